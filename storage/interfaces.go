package storage

import (
	"context"

	"github.com/poiesic/inflow/core"
)

// Store persists index entries. Implementations must be thread-safe and
// support concurrent access.
type Store interface {
	// Store inserts entries, replacing any existing entries with the same ID.
	// Sets InsertedAt on each entry if not already set.
	Store(ctx context.Context, entries ...*core.Entry) error

	// Remove deletes entries by their IDs. IDs without a stored entry are
	// ignored; removal of an absent entry is not an error.
	Remove(ctx context.Context, ids ...core.ID) error

	// List returns all stored entries in unspecified order.
	List(ctx context.Context) ([]*core.Entry, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
