package commands

import (
	"context"

	"postal/internal/core/domain/model/client"
)

type UpdateClientContactsCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewUpdateClientContactsCommandHandler(uowFactory ClientUoWFactory) UpdateClientContactsCommandHandler {
	return UpdateClientContactsCommandHandler{uowFactory: uowFactory}
}

func (h UpdateClientContactsCommandHandler) Handle(ctx context.Context, cmd UpdateClientContactsCommand) (*client.Client, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClientRepository()

	c, err := repo.Get(ctx, cmd.ClientID())
	if err != nil {
		return nil, err
	}

	if err = c.UpdateContacts(cmd.Contacts()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
