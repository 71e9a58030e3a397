package commands

import (
	"context"
)

type DeleteOperatorCommandHandler struct {
	uowFactory OperatorUoWFactory
}

func NewDeleteOperatorCommandHandler(uowFactory OperatorUoWFactory) DeleteOperatorCommandHandler {
	return DeleteOperatorCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOperatorCommandHandler) Handle(ctx context.Context, cmd DeleteOperatorCommand) error {
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

	if err := uow.OperatorRepository().Delete(ctx, cmd.OperatorID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
