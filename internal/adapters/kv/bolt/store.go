// Package bolt provides a key/value backend on an embedded bbolt database.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jsamuelsen11/clubstate/internal/domain"
)

// Name identifies the backend in health checks and metrics.
const Name = "bolt"

const clubBucket = "club"

var errBucketMissing = errors.New("club bucket is missing")

// Store provides a bbolt-backed key/value store.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, errors.New("storage is not configured")
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(clubBucket))
		if bucket == nil {
			return errBucketMissing
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
		}
		// v is only valid for the life of the transaction.
		value = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key in a single write transaction.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(clubBucket))
		if bucket == nil {
			return errBucketMissing
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("put %q: %w", key, err)
		}
		return nil
	})
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return Name }

// HealthCheck opens a read transaction and confirms the bucket exists.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(clubBucket)) == nil {
			return errBucketMissing
		}
		return nil
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(clubBucket)); err != nil {
			return fmt.Errorf("create club bucket: %w", err)
		}
		return nil
	})
}
