package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/bolt"
	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/kvtest"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

func open(t *testing.T, path string) *bolt.Store {
	t.Helper()

	s, err := bolt.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) ports.KVStore {
		return open(t, filepath.Join(t.TempDir(), "club.db"))
	})
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "club.db")
	ctx := context.Background()

	s, err := bolt.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Put(ctx, "config", []byte("persisted")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := open(t, path)
	got, err := reopened.Get(ctx, "config")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get() = %q, want %q", got, "persisted")
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := bolt.Open("  "); err == nil {
		t.Fatal("Open(blank) error = nil, want error")
	}
}

func TestStore_HealthCheck(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "club.db"))
	if err := s.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
	if s.Name() != bolt.Name {
		t.Errorf("Name() = %q, want %q", s.Name(), bolt.Name)
	}
}

func TestStore_NilIsNotConfigured(t *testing.T) {
	var s *bolt.Store
	if _, err := s.Get(context.Background(), "config"); err == nil {
		t.Error("Get() on nil store error = nil, want error")
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil store error = %v, want nil", err)
	}
}
