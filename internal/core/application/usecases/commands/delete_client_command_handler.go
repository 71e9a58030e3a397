package commands

import (
	"context"
	"fmt"

	"postal/internal/pkg/errs"
)

// DeleteClientCommandHandler removes a client that no parcel references. Deleting a
// referenced client fails with errs.PolicyDeniedError.
type DeleteClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewDeleteClientCommandHandler(uowFactory ClientUoWFactory) DeleteClientCommandHandler {
	return DeleteClientCommandHandler{uowFactory: uowFactory}
}

func (h DeleteClientCommandHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clientRepo := uow.ClientRepository()

	if _, err := clientRepo.Get(ctx, cmd.ClientID()); err != nil {
		return err
	}

	referenced, err := uow.ParcelRepository().ReferencesClient(ctx, cmd.ClientID())
	if err != nil {
		return err
	}
	if referenced {
		return errs.NewPolicyDeniedError("clientReferenced",
			fmt.Sprintf("client %d is sender or receiver of existing parcels", cmd.ClientID()))
	}

	if err = clientRepo.Delete(ctx, cmd.ClientID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
