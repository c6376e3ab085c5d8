package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/pkg/metrics"
)

// Map-backed, in-memory Store implementation.
//
// A plain map under an RWMutex is enough here: sessions are keyed by uuid,
// reads dominate writes, and nothing orders sessions relative to each other.
// Every read hands out a deep copy so callers can never mutate stored state
// behind the lock's back.

const defaultMaxSessions = 1024

// MemStore is an in-memory implementation of Store bounded by a session cap.
type MemStore struct {
	mu          sync.RWMutex
	sessions    map[string]model.Session
	maxSessions int
}

// NewMemStore creates a bounded in-memory session store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		sessions:    make(map[string]model.Session),
		maxSessions: defaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new session, rejecting duplicates and capacity overflow.
func (s *MemStore) Create(ctx context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return ErrAlreadyExists
	}
	if len(s.sessions) >= s.maxSessions {
		return ErrTooManySessions
	}
	s.sessions[session.ID] = session.Clone()
	metrics.UpdateActiveSessions(len(s.sessions))
	return nil
}

// Get returns a deep copy of the session.
func (s *MemStore) Get(ctx context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrNotFound
	}
	return session.Clone(), nil
}

// Update applies fn to a copy of the session and commits it if fn succeeds.
func (s *MemStore) Update(ctx context.Context, id string, fn func(*model.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	working := stored.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	working.UpdatedAt = time.Now().UTC()
	s.sessions[id] = working
	return nil
}

// Delete removes a session if present.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	metrics.UpdateActiveSessions(len(s.sessions))
	return nil
}

// Count returns the number of sessions tracked.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
