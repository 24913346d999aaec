package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"registrar/internal/registration/models"
	"registrar/pkg/platform/sentinel"
)

// InMemoryStore keeps registrations in memory for tests and local development.
// It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu            sync.RWMutex
	registrations map[uuid.UUID]models.Registration
	seq           map[uuid.UUID]int
	nextSeq       int
}

// NewInMemory constructs an empty in-memory registration store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		registrations: make(map[uuid.UUID]models.Registration),
		seq:           make(map[uuid.UUID]int),
	}
}

func (s *InMemoryStore) Insert(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registrations[reg.ID]; exists {
		return sentinel.ErrConflict
	}
	s.registrations[reg.ID] = *reg
	s.seq[reg.ID] = s.nextSeq
	s.nextSeq++
	return nil
}

// SelectAll returns every registration ordered by registration date descending.
// Records sharing a timestamp are ordered newest-inserted first so the listing
// is stable across calls.
func (s *InMemoryStore) SelectAll(_ context.Context) ([]models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Registration, 0, len(s.registrations))
	for _, reg := range s.registrations {
		all = append(all, reg)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].RegistrationDate.Equal(all[j].RegistrationDate) {
			return all[i].RegistrationDate.After(all[j].RegistrationDate)
		}
		return s.seq[all[i].ID] > s.seq[all[j].ID]
	})
	return all, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.registrations[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	reg.Status = status
	s.registrations[id] = reg
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.registrations, id)
	delete(s.seq, id)
	return nil
}
