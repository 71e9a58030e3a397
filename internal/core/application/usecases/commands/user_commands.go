package commands

import (
	"errors"
	"strings"

	"postal/internal/core/domain/model/session"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

var (
	ErrRoleIsRequired = errs.NewValueIsRequiredError("role")

	ErrRegisterUserCommandIsNotConstructed   = errors.New("RegisterUserCommand must be created via NewRegisterUserCommand constructor")
	ErrChangeUserRoleCommandIsNotConstructed = errors.New("ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor")
	ErrChangePasswordCommandIsNotConstructed = errors.New("ChangePasswordCommand must be created via NewChangePasswordCommand constructor")
)

// requireAdmin rejects callers whose session does not carry the admin role.
func requireAdmin(s session.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return errs.NewPolicyDeniedError("adminOnly", "user "+s.Username()+" is not an administrator")
	}
	return nil
}

type RegisterUserCommand struct {
	caller   session.Session
	username string
	password string
	role     string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(caller session.Session, username, password, role string) (RegisterUserCommand, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)

	var err error
	if username == "" {
		err = errors.Join(err, session.ErrUsernameIsRequired)
	}
	if password == "" {
		err = errors.Join(err, ErrPasswordIsRequired)
	}
	if role == "" {
		err = errors.Join(err, ErrRoleIsRequired)
	}
	if err = errors.Join(err, requireAdmin(caller)); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		caller:   caller,
		username: username,
		password: password,
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Caller() session.Session { return c.caller }
func (c RegisterUserCommand) Username() string        { return c.username }
func (c RegisterUserCommand) Password() string        { return c.password }
func (c RegisterUserCommand) Role() string            { return c.role }

type ChangeUserRoleCommand struct {
	caller   session.Session
	username string
	role     string

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(caller session.Session, username, role string) (ChangeUserRoleCommand, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)

	var err error
	if username == "" {
		err = errors.Join(err, session.ErrUsernameIsRequired)
	}
	if role == "" {
		err = errors.Join(err, ErrRoleIsRequired)
	}
	if err = errors.Join(err, requireAdmin(caller)); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	return ChangeUserRoleCommand{caller: caller, username: username, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) Caller() session.Session { return c.caller }
func (c ChangeUserRoleCommand) Username() string        { return c.username }
func (c ChangeUserRoleCommand) Role() string            { return c.role }

// ChangePasswordCommand changes the caller's own password.
type ChangePasswordCommand struct {
	caller      session.Session
	oldPassword string
	newPassword string

	guard guard.ConstructorGuard
}

func NewChangePasswordCommand(caller session.Session, oldPassword, newPassword string) (ChangePasswordCommand, error) {
	var err error
	if oldPassword == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("oldPassword"))
	}
	if newPassword == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("newPassword"))
	}
	if err = errors.Join(err, caller.Validate()); err != nil {
		return ChangePasswordCommand{}, err
	}

	return ChangePasswordCommand{
		caller:      caller,
		oldPassword: oldPassword,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ChangePasswordCommand) Validate() error {
	return c.guard.Validate(ErrChangePasswordCommandIsNotConstructed)
}

func (c ChangePasswordCommand) Caller() session.Session { return c.caller }
func (c ChangePasswordCommand) OldPassword() string     { return c.oldPassword }
func (c ChangePasswordCommand) NewPassword() string     { return c.newPassword }
