package commands

import (
	"errors"
	"strings"

	"postal/internal/core/domain/model/session"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

var (
	ErrPasswordIsRequired = errs.NewValueIsRequiredError("password")

	ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")
)

type LoginCommand struct {
	username string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(username, password string) (LoginCommand, error) {
	username = strings.TrimSpace(username)

	var err error
	if username == "" {
		err = errors.Join(err, session.ErrUsernameIsRequired)
	}
	if password == "" {
		err = errors.Join(err, ErrPasswordIsRequired)
	}
	if err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{username: username, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Username() string { return c.username }
func (c LoginCommand) Password() string { return c.password }
