package sessionstore

import (
	"context"
	"sync"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/session"
	"postal/internal/core/ports"
	"postal/internal/pkg/errs"
)

// MemoryStore keeps sessions in process. Expired sessions are dropped lazily.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
	clock    kernel.Clock
}

func NewMemoryStore(clock kernel.Clock) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]session.Session), clock: clock}
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Save(_ context.Context, sess session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID().String()] = sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id kernel.UUID) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id.String()]
	if !ok {
		return session.Session{}, errs.NewObjectNotFoundError("sessionId", id.String())
	}
	if sess.IsExpired(s.clock.Now()) {
		delete(s.sessions, id.String())
		return session.Session{}, errs.NewObjectNotFoundError("sessionId", id.String())
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id.String())
	return nil
}
