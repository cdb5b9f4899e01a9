package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	adapthttp "github.com/jsamuelsen11/clubstate/internal/adapters/http"
	"github.com/jsamuelsen11/clubstate/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/clubstate/internal/adapters/kv/memory"
	"github.com/jsamuelsen11/clubstate/internal/adapters/statestore"
	"github.com/jsamuelsen11/clubstate/internal/app"
	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/platform/codec"
	"github.com/jsamuelsen11/clubstate/internal/platform/health"
	"github.com/jsamuelsen11/clubstate/internal/platform/logging"
)

// run executes clubctl with args against a store under dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--path", filepath.Join(dir, "club.db")}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestClubctl_Scenario(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"bolt", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			b := "--backend=" + backend

			if _, err := run(t, dir, b, "--caller", "creator", "instantiate",
				"--count", "17", "--x-factor", "17", "--member", "alice", "--member", "bob"); err != nil {
				t.Fatalf("instantiate error = %v", err)
			}

			out, err := run(t, dir, b, "--caller", "alice", "execute", "increment")
			if err != nil {
				t.Fatalf("execute increment error = %v", err)
			}
			if !strings.Contains(out, "incremented") {
				t.Errorf("execute output = %q, want success message", out)
			}

			if _, err := run(t, dir, b, "--caller", "alice", "execute", "reset", "--count", "5"); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("non-owner reset error = %v, want ErrUnauthorized", err)
			}

			out, err = run(t, dir, b, "query", "get_count")
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if !strings.Contains(out, `"count": 18`) {
				t.Errorf("query output = %q, want count 18", out)
			}

			out, err = run(t, dir, b, "query", "get_member_list")
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if !strings.Contains(out, `"alice"`) || !strings.Contains(out, `"bob"`) {
				t.Errorf("member list output = %q", out)
			}
		})
	}
}

func TestClubctl_CBORCodec(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, err := run(t, dir, "--codec", "cbor", "--caller", "creator", "instantiate", "--count", "1", "--x-factor", "2"); err != nil {
		t.Fatalf("instantiate error = %v", err)
	}
	out, err := run(t, dir, "--codec", "cbor", "query", "get_x_factor")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	if !strings.Contains(out, `"x_factor": 2`) {
		t.Errorf("query output = %q, want x_factor 2", out)
	}
}

func TestClubctl_RemoteServer(t *testing.T) {
	t.Parallel()

	svc := app.NewClubService(statestore.New(memory.New(), codec.JSON{}), nil, logging.Discard())
	srv := httptest.NewServer(adapthttp.NewRouter(
		handlers.NewClubHandler(svc),
		handlers.NewHealthHandler(health.New()),
		0,
	))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	s := "--server=" + srv.URL

	if _, err := run(t, dir, s, "--caller", "creator", "instantiate",
		"--count", "1", "--x-factor", "2", "--member", "alice"); err != nil {
		t.Fatalf("instantiate error = %v", err)
	}
	if _, err := run(t, dir, s, "--caller", "alice", "execute", "add_member_to_club", "--prospect", "dave"); err != nil {
		t.Fatalf("execute add_member_to_club error = %v", err)
	}
	if _, err := run(t, dir, s, "--caller", "erin", "execute", "add_member_to_club", "--prospect", "frank"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("non-member add error = %v, want ErrUnauthorized", err)
	}

	out, err := run(t, dir, s, "query", "get_member_list")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	if !strings.Contains(out, `"dave"`) || strings.Contains(out, `"frank"`) {
		t.Errorf("member list output = %q, want dave and not frank", out)
	}

	if _, err := run(t, dir, "--server", "not-a-url", "query", "get_count"); err == nil {
		t.Error("query with malformed --server error = nil, want error")
	}
}

func TestClubctl_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing caller", args: []string{"execute", "increment"}},
		{name: "invalid caller", args: []string{"--caller", "Alice", "execute", "increment"}},
		{name: "unknown command", args: []string{"--caller", "alice", "execute", "decrement"}},
		{name: "reset without count", args: []string{"--caller", "alice", "execute", "reset"}},
		{name: "count on increment", args: []string{"--caller", "alice", "execute", "increment", "--count", "3"}},
		{name: "unknown query", args: []string{"query", "get_owner"}},
		{name: "memory backend", args: []string{"--backend", "memory", "query", "get_count"}},
		{name: "unknown codec", args: []string{"--codec", "xml", "query", "get_count"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "query", "get_count"}},
		{name: "instantiate without x-factor", args: []string{"--caller", "alice", "instantiate", "--count", "1"}},
		{name: "query before instantiate", args: []string{"query", "get_count"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := run(t, t.TempDir(), tt.args...); err == nil {
				t.Errorf("clubctl %v error = nil, want error", tt.args)
			}
		})
	}
}
