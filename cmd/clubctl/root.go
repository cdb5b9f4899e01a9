package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/clubstate/internal/adapters/clients/clubapi"
	"github.com/jsamuelsen11/clubstate/internal/adapters/kv"
	"github.com/jsamuelsen11/clubstate/internal/adapters/statestore"
	"github.com/jsamuelsen11/clubstate/internal/app"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/platform/codec"
	"github.com/jsamuelsen11/clubstate/internal/platform/config"
	"github.com/jsamuelsen11/clubstate/internal/platform/httpclient"
	"github.com/jsamuelsen11/clubstate/internal/platform/logging"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

var exampleUsage = strings.TrimSpace(`
  clubctl --caller creator instantiate --count 17 --x-factor 17 --member alice --member bob
  clubctl --caller alice execute increment
  clubctl --caller creator execute reset --count 5
  clubctl query get_member_list
  clubctl --server http://localhost:8080 --caller alice execute increment
`)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	caller   string
	server   string
	backend  string
	path     string
	codec    string
	logLevel string
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "clubctl",
		Short:         "Inspect and drive a club state store from the command line",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.caller, "caller", "", "identity the command runs as")
	flags.StringVar(&opts.server, "server", "", "base URL of a running server; when set the store flags are ignored")
	flags.StringVar(&opts.backend, "backend", config.BackendBolt, "storage backend (bolt|sqlite)")
	flags.StringVar(&opts.path, "path", "data/club.db", "path to the store file")
	flags.StringVar(&opts.codec, "codec", codec.NameJSON, "record encoding (json|cbor)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	root.AddCommand(
		newInstantiateCmd(opts),
		newExecuteCmd(opts),
		newQueryCmd(opts),
	)
	return root
}

// session is the service a command runs against: a local store or a
// remote server.
type session struct {
	svc     ports.ClubService
	backend kv.Backend // nil for a remote session
}

func (s *session) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func (o *globalOptions) open(stderr io.Writer) (*session, error) {
	if !logging.ValidLevel(o.logLevel) {
		return nil, fmt.Errorf("invalid --log-level %q", o.logLevel)
	}
	logger := logging.New(o.logLevel, "text", stderr)

	if o.server != "" {
		return o.openRemote(logger)
	}
	if o.backend == config.BackendMemory {
		return nil, errors.New("the memory backend does not persist between invocations; use bolt or sqlite")
	}

	c, err := codec.New(o.codec)
	if err != nil {
		return nil, err
	}

	backend, err := kv.Open(&config.StoreConfig{Backend: o.backend, Path: o.path, Codec: o.codec})
	if err != nil {
		return nil, fmt.Errorf("opening %s store at %s: %w", o.backend, o.path, err)
	}

	store := statestore.New(backend, c)
	return &session{
		svc:     app.NewClubService(store, nil, logger),
		backend: backend,
	}, nil
}

func (o *globalOptions) openRemote(logger *slog.Logger) (*session, error) {
	cfg := config.DefaultClientConfig(o.server)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid --server: %w", err)
	}
	hc := httpclient.New(&cfg, "clubstate", nil, logger)
	return &session{svc: clubapi.New(hc, logger)}, nil
}

func (o *globalOptions) requireCaller() (club.Identity, error) {
	return club.ParseIdentity("caller", o.caller)
}

// withSession opens the store, runs fn, and closes the store, joining any
// close error into the result.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(*session) error) (err error) {
	s, err := opts.open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := httpclient.WithRequestID(cmd.Context(), uuid.NewString())
	cmd.SetContext(ctx)
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
