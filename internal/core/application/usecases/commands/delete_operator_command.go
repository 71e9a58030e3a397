package commands

import (
	"errors"

	"postal/internal/pkg/guard"
)

var ErrDeleteOperatorCommandIsNotConstructed = errors.New(
	"DeleteOperatorCommand must be created via NewDeleteOperatorCommand constructor",
)

type DeleteOperatorCommand struct {
	operatorID int

	guard guard.ConstructorGuard
}

func NewDeleteOperatorCommand(operatorID int) (DeleteOperatorCommand, error) {
	if err := positiveID("operatorId", operatorID); err != nil {
		return DeleteOperatorCommand{}, err
	}
	return DeleteOperatorCommand{operatorID: operatorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOperatorCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOperatorCommandIsNotConstructed)
}

func (c DeleteOperatorCommand) OperatorID() int { return c.operatorID }
