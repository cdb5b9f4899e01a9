// Package memory provides an in-process key/value backend. State does not
// survive a restart; it backs tests and throwaway local runs.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// Name identifies the backend in health checks and metrics.
const Name = "memory"

// Store is a map guarded by a read/write mutex. Values are copied on the way
// in and out, so callers never share a backing array with the store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	return bytes.Clone(v), nil
}

// Put stores a copy of value under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = bytes.Clone(value)
	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return Name }

// HealthCheck always succeeds.
func (s *Store) HealthCheck(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
