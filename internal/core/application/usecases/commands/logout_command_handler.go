package commands

import (
	"context"

	"postal/internal/core/ports"
)

type LogoutCommandHandler struct {
	sessions ports.SessionStore
}

func NewLogoutCommandHandler(sessions ports.SessionStore) LogoutCommandHandler {
	return LogoutCommandHandler{sessions: sessions}
}

// Handle forgets the session. Deleting an unknown session is not an error.
func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.sessions.Delete(ctx, cmd.SessionID())
}
