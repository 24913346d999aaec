package store

import (
	"context"

	"github.com/google/uuid"

	"registrar/internal/registration/models"
)

// Store is the persistence contract for registrations.
//
// Error Contract:
// - UpdateStatus and Delete return sentinel.ErrNotFound when the id does not exist
// - Other methods return nil on success or wrapped errors for infrastructure failures
type Store interface {
	Insert(ctx context.Context, reg *models.Registration) error
	SelectAll(ctx context.Context) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}
