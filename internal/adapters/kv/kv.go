// Package kv opens the byte-level storage backend selected by configuration.
// Backends live in subpackages; this package only chooses between them.
package kv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/bolt"
	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/memory"
	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/sqlite"
	"github.com/jsamuelsen11/clubstate/internal/platform/config"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// Backend is a storage backend that can report its health and be closed.
type Backend interface {
	ports.KVStore
	ports.HealthChecker
	Close() error
}

// Compile-time interface checks.
var (
	_ Backend = (*memory.Store)(nil)
	_ Backend = (*bolt.Store)(nil)
	_ Backend = (*sqlite.Store)(nil)
)

// Open returns the backend named by cfg.Backend, creating the parent
// directory of a file-backed store. The caller owns the result and must
// Close it.
func Open(cfg *config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBolt:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return bolt.Open(cfg.Path)
	case config.BackendSQLite:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create store directory %s: %w", dir, err)
	}
	return nil
}
