package commands

import (
	"errors"

	"postal/internal/pkg/guard"
)

var ErrDeleteDeliveryPointCommandIsNotConstructed = errors.New(
	"DeleteDeliveryPointCommand must be created via NewDeleteDeliveryPointCommand constructor",
)

type DeleteDeliveryPointCommand struct {
	deliveryPointID int

	guard guard.ConstructorGuard
}

func NewDeleteDeliveryPointCommand(deliveryPointID int) (DeleteDeliveryPointCommand, error) {
	if err := positiveID("deliveryPointId", deliveryPointID); err != nil {
		return DeleteDeliveryPointCommand{}, err
	}
	return DeleteDeliveryPointCommand{deliveryPointID: deliveryPointID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDeliveryPointCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryPointCommandIsNotConstructed)
}

func (c DeleteDeliveryPointCommand) DeliveryPointID() int { return c.deliveryPointID }
