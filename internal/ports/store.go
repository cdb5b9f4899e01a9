package ports

import (
	"context"

	"github.com/jsamuelsen11/clubstate/internal/domain/club"
)

// StateStore owns the single persisted club record.
// All methods are serialized with respect to each other.
type StateStore interface {
	// Load returns the current record.
	// Returns domain.ErrUninitialized if nothing has been stored and
	// domain.ErrCorrupted if the stored bytes cannot be decoded.
	Load(ctx context.Context) (club.State, error)

	// Save unconditionally overwrites the record.
	Save(ctx context.Context, state club.State) error

	// Create writes the first record.
	// Returns domain.ErrAlreadyInitialized if a record already exists.
	Create(ctx context.Context, state club.State) error

	// Update loads the record, passes it to fn, and persists the result.
	// If fn returns an error nothing is written and that error is returned.
	// No other store operation can interleave between the load and the write.
	Update(ctx context.Context, fn func(club.State) (club.State, error)) (club.State, error)
}

// KVStore is the byte-level storage backend underneath StateStore.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
