// Package sessionstore keeps authenticated sessions. RedisStore is used when a
// Redis address is configured; MemoryStore otherwise.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"
	"postal/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "postal:session:"

type sessionRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RedisStore stores each session as a JSON value whose key expires together
// with the session.
type RedisStore struct {
	client *redis.Client
	clock  kernel.Clock
}

func NewRedisStore(client *redis.Client, clock kernel.Clock) *RedisStore {
	return &RedisStore{client: client, clock: clock}
}

var _ ports.SessionStore = (*RedisStore)(nil)

func (s *RedisStore) Save(ctx context.Context, sess session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	ttl := sess.ExpiresAt().Sub(s.clock.Now())
	if ttl <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("session", errors.New("session is already expired"))
	}

	payload, err := json.Marshal(sessionRecord{
		ID:        sess.ID().String(),
		Username:  sess.Username(),
		Role:      sess.Role(),
		Token:     sess.Token(),
		ExpiresAt: sess.ExpiresAt(),
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+sess.ID().String(), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id kernel.UUID) (session.Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, errs.NewObjectNotFoundError("sessionId", id.String())
		}
		return session.Session{}, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return session.Session{}, fmt.Errorf("session %s is malformed: %w", id, err)
	}

	sess, err := session.RestoreSession(id, rec.Username, rec.Role, rec.Token, rec.ExpiresAt)
	if err != nil {
		return session.Session{}, err
	}

	if sess.IsExpired(s.clock.Now()) {
		return session.Session{}, errs.NewObjectNotFoundError("sessionId", id.String())
	}

	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id kernel.UUID) error {
	return s.client.Del(ctx, keyPrefix+id.String()).Err()
}
