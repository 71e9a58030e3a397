package commands

import (
	"context"

	"postal/internal/core/domain/model/deliverypoint"
)

type AddDeliveryPointCommandHandler struct {
	uowFactory DeliveryPointUoWFactory
}

func NewAddDeliveryPointCommandHandler(uowFactory DeliveryPointUoWFactory) AddDeliveryPointCommandHandler {
	return AddDeliveryPointCommandHandler{uowFactory: uowFactory}
}

func (h AddDeliveryPointCommandHandler) Handle(ctx context.Context, cmd AddDeliveryPointCommand) (*deliverypoint.DeliveryPoint, error) {
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

	repo := uow.DeliveryPointRepository()

	id, err := repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	dp, err := deliverypoint.NewDeliveryPoint(id, cmd.Channel(), cmd.Address(), cmd.PostalCode(), cmd.Organization())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, dp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return dp, nil
}
