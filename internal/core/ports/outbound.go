package ports

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/model/session"
)

// NotificationPublisher fans parcel notifications out to subscribers. Delivery is
// best effort: implementations log failures instead of returning them.
type NotificationPublisher interface {
	Publish(ctx context.Context, code parcel.TrackingCode, notifications []parcel.Notification)
}

// SessionStore keeps authenticated sessions until they expire.
type SessionStore interface {
	Save(ctx context.Context, s session.Session) error
	// Get returns errs.ObjectNotFoundError for unknown or expired sessions.
	Get(ctx context.Context, id kernel.UUID) (session.Session, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// User is an account known to the security service.
type User struct {
	Username string
	Role     string
}

// Authenticator is the remote security service. Calls that manage users take the
// caller's session explicitly.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, role string, err error)
	Register(ctx context.Context, admin session.Session, username, password, role string) error
	ListUsers(ctx context.Context, admin session.Session) ([]User, error)
	ChangeRole(ctx context.Context, admin session.Session, username, role string) error
	ChangePassword(ctx context.Context, user session.Session, oldPassword, newPassword string) error
}
