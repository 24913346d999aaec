package store

import (
	"context"
	"sync"
	"time"

	"registrar/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in process memory. Sessions do not survive a
// restart, which is acceptable for single-instance deployments.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

type entry struct {
	session   Session
	expiresAt time.Time
}

// NewInMemory constructs an empty in-memory session store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]entry)}
}

func (s *InMemoryStore) Save(_ context.Context, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = entry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, sentinel.ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, sentinel.ErrNotFound
	}
	return e.session, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
