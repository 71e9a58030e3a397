package commands

import (
	"errors"

	"postal/internal/pkg/guard"
)

var ErrDeleteClientCommandIsNotConstructed = errors.New(
	"DeleteClientCommand must be created via NewDeleteClientCommand constructor",
)

type DeleteClientCommand struct {
	clientID int

	guard guard.ConstructorGuard
}

func NewDeleteClientCommand(clientID int) (DeleteClientCommand, error) {
	if err := positiveID("clientId", clientID); err != nil {
		return DeleteClientCommand{}, err
	}
	return DeleteClientCommand{clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteClientCommand) Validate() error {
	return c.guard.Validate(ErrDeleteClientCommandIsNotConstructed)
}

func (c DeleteClientCommand) ClientID() int { return c.clientID }
