// Package kvtest holds the behavioral test suite every ports.KVStore backend
// must pass.
package kvtest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// Run exercises store. newStore must return a fresh, empty store each call.
func Run(t *testing.T, newStore func(t *testing.T) ports.KVStore) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "config")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Put(ctx, "config", []byte(`{"count":17}`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "config")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !bytes.Equal(got, []byte(`{"count":17}`)) {
			t.Errorf("Get() = %q, want %q", got, `{"count":17}`)
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, v := range []string{"first", "second"} {
			if err := s.Put(ctx, "config", []byte(v)); err != nil {
				t.Fatalf("Put(%q) error = %v", v, err)
			}
		}
		got, err := s.Get(ctx, "config")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "second" {
			t.Errorf("Get() = %q, want %q", got, "second")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Put(ctx, "a", []byte("1")); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if _, err := s.Get(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get(b) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returned bytes are not aliased", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		in := []byte("abc")
		if err := s.Put(ctx, "config", in); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		in[0] = 'z'

		got, err := s.Get(ctx, "config")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		got[1] = 'z'

		again, err := s.Get(ctx, "config")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(again) != "abc" {
			t.Errorf("Get() = %q after caller mutation, want %q", again, "abc")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := s.Put(ctx, "config", []byte("x")); !errors.Is(err, context.Canceled) {
			t.Errorf("Put() error = %v, want context.Canceled", err)
		}
		if _, err := s.Get(ctx, "config"); !errors.Is(err, context.Canceled) {
			t.Errorf("Get() error = %v, want context.Canceled", err)
		}
	})
}
