// Package session models an authenticated session obtained from the security
// service. A session is passed explicitly to operations that need authorization;
// there is no process-wide current token.
package session

import (
	"errors"
	"strings"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

// RoleAdmin is the role allowed to manage users.
const RoleAdmin = "Admin"

var (
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	ErrTokenIsRequired    = errs.NewValueIsRequiredError("token")
	// ErrSessionIsNotConstructed is returned when using a zero-value Session.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")
)

// Session binds a bearer token issued by the security service to a local id.
type Session struct {
	id        kernel.UUID
	username  string
	role      string
	token     string
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

// NewSession creates a session with a fresh id that expires ttl after now.
func NewSession(username, role, token string, now time.Time, ttl time.Duration) (Session, error) {
	return RestoreSession(kernel.NewUUID(), username, role, token, now.Add(ttl))
}

func RestoreSession(id kernel.UUID, username, role, token string, expiresAt time.Time) (Session, error) {
	username = strings.TrimSpace(username)
	var err error
	if username == "" {
		err = errors.Join(err, ErrUsernameIsRequired)
	}
	if token == "" {
		err = errors.Join(err, ErrTokenIsRequired)
	}
	if err = errors.Join(err, id.Validate()); err != nil {
		return Session{}, err
	}

	return Session{
		id:        id,
		username:  username,
		role:      role,
		token:     token,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s Session) ID() kernel.UUID      { return s.id }
func (s Session) Username() string     { return s.username }
func (s Session) Role() string         { return s.role }
func (s Session) Token() string        { return s.token }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }

func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

func (s Session) IsAdmin() bool {
	return strings.EqualFold(s.role, RoleAdmin)
}
