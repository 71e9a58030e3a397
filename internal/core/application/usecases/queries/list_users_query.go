package queries

import (
	"context"

	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"
	"postal/internal/pkg/errs"
)

// ListUsersQueryHandler asks the security service for its accounts. Only
// administrators may list users.
type ListUsersQueryHandler struct {
	authenticator ports.Authenticator
}

func NewListUsersQueryHandler(authenticator ports.Authenticator) ListUsersQueryHandler {
	return ListUsersQueryHandler{authenticator: authenticator}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, caller session.Session) ([]ports.User, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, errs.NewPolicyDeniedError("adminOnly", "user "+caller.Username()+" is not an administrator")
	}
	return h.authenticator.ListUsers(ctx, caller)
}
