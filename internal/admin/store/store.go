// Package store persists admin sessions. A session exists from login until
// logout or expiry; tokens referencing a missing session are rejected.
package store

import (
	"context"
	"time"
)

// Session is one live admin login.
type Session struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Store is the session persistence contract.
//
// Error Contract:
// - Find returns sentinel.ErrNotFound when the session does not exist or has expired
// - Delete is idempotent; deleting an absent session is not an error
type Store interface {
	Save(ctx context.Context, session Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
