package commands

import (
	"context"
)

type DeleteDeliveryPointCommandHandler struct {
	uowFactory DeliveryPointUoWFactory
}

func NewDeleteDeliveryPointCommandHandler(uowFactory DeliveryPointUoWFactory) DeleteDeliveryPointCommandHandler {
	return DeleteDeliveryPointCommandHandler{uowFactory: uowFactory}
}

func (h DeleteDeliveryPointCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryPointCommand) error {
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

	if err := uow.DeliveryPointRepository().Delete(ctx, cmd.DeliveryPointID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
