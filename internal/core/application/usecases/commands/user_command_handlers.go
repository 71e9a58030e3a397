package commands

import (
	"context"

	"postal/internal/core/ports"
)

// UserCommandHandler forwards user management to the security service. The
// service enforces its own authorization as well; the admin check here fails
// fast without a round trip.
type UserCommandHandler struct {
	authenticator ports.Authenticator
}

func NewUserCommandHandler(authenticator ports.Authenticator) UserCommandHandler {
	return UserCommandHandler{authenticator: authenticator}
}

func (h UserCommandHandler) Register(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.authenticator.Register(ctx, cmd.Caller(), cmd.Username(), cmd.Password(), cmd.Role())
}

func (h UserCommandHandler) ChangeRole(ctx context.Context, cmd ChangeUserRoleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.authenticator.ChangeRole(ctx, cmd.Caller(), cmd.Username(), cmd.Role())
}

func (h UserCommandHandler) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.authenticator.ChangePassword(ctx, cmd.Caller(), cmd.OldPassword(), cmd.NewPassword())
}
