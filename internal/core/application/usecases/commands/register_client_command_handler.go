package commands

import (
	"context"

	"postal/internal/core/domain/model/client"
)

// RegisterClientCommandHandler assigns the next sequential id and stores the client.
type RegisterClientCommandHandler struct {
	uowFactory ClientUoWFactory
}

func NewRegisterClientCommandHandler(uowFactory ClientUoWFactory) RegisterClientCommandHandler {
	return RegisterClientCommandHandler{uowFactory: uowFactory}
}

func (h RegisterClientCommandHandler) Handle(ctx context.Context, cmd RegisterClientCommand) (*client.Client, error) {
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

	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := client.NewClient(id, cmd.Contacts(), cmd.Category())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
