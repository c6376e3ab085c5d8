// Package repository defines the squad session store interface and errors.
package repository

import (
	"context"

	"github.com/okian/gaffer/internal/domain/model"
)

// Store provides read/write access to squad sessions.
//
// Implementations must treat sessions as values: Get returns a deep copy,
// and Update applies its mutation under the store's own synchronization so
// concurrent callers never observe a half-applied roster.
type Store interface {
	// Create registers a new session.
	// Returns ErrTooManySessions when the store is at capacity.
	Create(ctx context.Context, session model.Session) error

	// Get returns a deep copy of the session.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (model.Session, error)

	// Update applies fn to the stored session atomically. fn receives a
	// mutable copy; returning an error aborts the update and the error is
	// passed through unchanged.
	Update(ctx context.Context, id string, fn func(*model.Session) error) error

	// Delete removes a session. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of sessions tracked.
	Count(ctx context.Context) int
}
