package commands

import (
	"context"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"
)

// LoginCommandHandler exchanges credentials for a token at the security service
// and keeps the result as a local session.
type LoginCommandHandler struct {
	authenticator ports.Authenticator
	sessions      ports.SessionStore
	clock         kernel.Clock
	ttl           time.Duration
}

func NewLoginCommandHandler(
	authenticator ports.Authenticator,
	sessions ports.SessionStore,
	clock kernel.Clock,
	ttl time.Duration,
) LoginCommandHandler {
	return LoginCommandHandler{authenticator: authenticator, sessions: sessions, clock: clock, ttl: ttl}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (session.Session, error) {
	if err := cmd.Validate(); err != nil {
		return session.Session{}, err
	}

	token, role, err := h.authenticator.Login(ctx, cmd.Username(), cmd.Password())
	if err != nil {
		return session.Session{}, err
	}

	s, err := session.NewSession(cmd.Username(), role, token, h.clock.Now(), h.ttl)
	if err != nil {
		return session.Session{}, err
	}

	if err = h.sessions.Save(ctx, s); err != nil {
		return session.Session{}, err
	}

	return s, nil
}
