package commands

import (
	"errors"
	"strings"

	"postal/internal/core/domain/model/operator"
	"postal/internal/pkg/guard"
)

var ErrRegisterOperatorCommandIsNotConstructed = errors.New(
	"RegisterOperatorCommand must be created via NewRegisterOperatorCommand constructor",
)

type RegisterOperatorCommand struct {
	name string

	guard guard.ConstructorGuard
}

func NewRegisterOperatorCommand(name string) (RegisterOperatorCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterOperatorCommand{}, operator.ErrNameIsRequired
	}
	return RegisterOperatorCommand{name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterOperatorCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOperatorCommandIsNotConstructed)
}

func (c RegisterOperatorCommand) Name() string { return c.name }
