package queries

import (
	"context"
	"slices"

	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
)

type OperatorQueryHandler struct {
	repos Repositories
}

func NewOperatorQueryHandler(repos Repositories) OperatorQueryHandler {
	return OperatorQueryHandler{repos: repos}
}

func (h OperatorQueryHandler) Get(ctx context.Context, operatorID int) (*operator.Operator, error) {
	if err := positiveID("operatorId", operatorID); err != nil {
		return nil, err
	}
	return h.repos.OperatorRepository().Get(ctx, operatorID)
}

func (h OperatorQueryHandler) List(ctx context.Context) ([]*operator.Operator, error) {
	return h.repos.OperatorRepository().List(ctx)
}

type DeliveryPointQueryHandler struct {
	repos Repositories
}

func NewDeliveryPointQueryHandler(repos Repositories) DeliveryPointQueryHandler {
	return DeliveryPointQueryHandler{repos: repos}
}

func (h DeliveryPointQueryHandler) Get(ctx context.Context, deliveryPointID int) (*deliverypoint.DeliveryPoint, error) {
	if err := positiveID("deliveryPointId", deliveryPointID); err != nil {
		return nil, err
	}
	return h.repos.DeliveryPointRepository().Get(ctx, deliveryPointID)
}

// List returns delivery points ordered by id, restricted to channel when it is given.
func (h DeliveryPointQueryHandler) List(ctx context.Context, channel *parcel.Channel) ([]*deliverypoint.DeliveryPoint, error) {
	if channel != nil {
		if err := channel.Validate(); err != nil {
			return nil, err
		}
	}

	points, err := h.repos.DeliveryPointRepository().List(ctx)
	if err != nil || channel == nil {
		return points, err
	}
	return slices.DeleteFunc(points, func(dp *deliverypoint.DeliveryPoint) bool {
		return dp.Channel() != *channel
	}), nil
}
