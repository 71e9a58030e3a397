package commands

import (
	"errors"

	"postal/internal/core/domain/model/client"
	"postal/internal/pkg/guard"
)

var ErrRegisterClientCommandIsNotConstructed = errors.New(
	"RegisterClientCommand must be created via NewRegisterClientCommand constructor",
)

// RegisterClientCommand adds a new client to the directory.
type RegisterClientCommand struct {
	contacts client.Contacts
	category client.Category

	guard guard.ConstructorGuard
}

func NewRegisterClientCommand(contacts client.Contacts, category client.Category) (RegisterClientCommand, error) {
	var err error
	if contacts.FullName == "" {
		err = errors.Join(err, client.ErrFullNameIsRequired)
	}
	if contacts.Phone == "" {
		err = errors.Join(err, client.ErrPhoneIsRequired)
	}
	if err = errors.Join(err, category.Validate()); err != nil {
		return RegisterClientCommand{}, err
	}

	return RegisterClientCommand{contacts: contacts, category: category, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterClientCommand) Validate() error {
	return c.guard.Validate(ErrRegisterClientCommandIsNotConstructed)
}

func (c RegisterClientCommand) Contacts() client.Contacts { return c.contacts }
func (c RegisterClientCommand) Category() client.Category { return c.category }
