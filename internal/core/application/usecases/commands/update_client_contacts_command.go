package commands

import (
	"errors"

	"postal/internal/core/domain/model/client"
	"postal/internal/pkg/guard"
)

var ErrUpdateClientContactsCommandIsNotConstructed = errors.New(
	"UpdateClientContactsCommand must be created via NewUpdateClientContactsCommand constructor",
)

// UpdateClientContactsCommand replaces a client's contact fields.
type UpdateClientContactsCommand struct {
	clientID int
	contacts client.Contacts

	guard guard.ConstructorGuard
}

func NewUpdateClientContactsCommand(clientID int, contacts client.Contacts) (UpdateClientContactsCommand, error) {
	if err := positiveID("clientId", clientID); err != nil {
		return UpdateClientContactsCommand{}, err
	}
	return UpdateClientContactsCommand{clientID: clientID, contacts: contacts, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateClientContactsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateClientContactsCommandIsNotConstructed)
}

func (c UpdateClientContactsCommand) ClientID() int             { return c.clientID }
func (c UpdateClientContactsCommand) Contacts() client.Contacts { return c.contacts }
