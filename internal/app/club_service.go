// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/domain/club"
	"github.com/jsamuelsen11/clubstate/internal/platform/logging"
	"github.com/jsamuelsen11/clubstate/internal/platform/telemetry"
	"github.com/jsamuelsen11/clubstate/internal/ports"
)

// Compile-time check that ClubService implements ports.ClubService.
var _ ports.ClubService = (*ClubService)(nil)

// ClubService implements ports.ClubService. Authorization and state
// transitions live in the club package; this type binds them to the state
// store and adds logging and metrics.
type ClubService struct {
	store   ports.StateStore
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewClubService creates a ClubService. A nil logger is replaced with one
// that discards output; nil metrics disables recording.
func NewClubService(store ports.StateStore, metrics *telemetry.Metrics, logger *slog.Logger) *ClubService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ClubService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Instantiate builds the initial state with caller as owner and persists it.
func (s *ClubService) Instantiate(ctx context.Context, caller club.Identity, params club.InstantiateParams) error {
	s.logger.InfoContext(ctx, "instantiating club",
		slog.String("caller", caller.String()),
		slog.Int("count", int(params.Count)),
		slog.Int("x_factor", int(params.XFactor)),
	)

	state, err := club.New(caller, params)
	if err != nil {
		s.logFailure(ctx, "Instantiate", "", caller, err)
		return err
	}

	if err := s.store.Create(ctx, state); err != nil {
		s.logFailure(ctx, "Instantiate", "", caller, err)
		return err
	}

	s.logger.DebugContext(ctx, "club instantiated",
		slog.String("owner", caller.String()),
		slog.Int("members", len(state.Members)),
	)
	return nil
}

// Execute runs cmd on behalf of caller as one serialized load, authorize,
// apply, save step.
func (s *ClubService) Execute(ctx context.Context, caller club.Identity, cmd club.Command) error {
	start := time.Now()
	s.logger.InfoContext(ctx, "executing command",
		slog.String("command", cmd.Kind.String()),
		slog.String("caller", caller.String()),
	)

	_, err := s.store.Update(ctx, func(current club.State) (club.State, error) {
		return club.Apply(current, caller, cmd)
	})
	s.metrics.RecordCommand(ctx, cmd.Kind.String(), resultOf(err), start)
	if err != nil {
		s.logFailure(ctx, "Execute", cmd.Kind, caller, err)
		return err
	}

	s.logger.DebugContext(ctx, club.SuccessMessage(cmd.Kind),
		slog.String("command", cmd.Kind.String()),
		slog.String("caller", caller.String()),
	)
	return nil
}

// Query answers kind against the current state.
func (s *ClubService) Query(ctx context.Context, kind club.QueryKind) (club.Answer, error) {
	s.logger.InfoContext(ctx, "answering query", slog.String("query", kind.String()))

	if !kind.IsValid() {
		return club.Answer{}, &domain.ValidationError{
			Fields: map[string]string{"query": "unknown: " + kind.String()},
		}
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load club state",
			slog.String("operation", "Query"),
			slog.String("query", kind.String()),
			slog.Any("error", err),
		)
		return club.Answer{}, err
	}

	return club.Read(state, kind)
}

// logFailure logs caller-side rejections at warn and everything else at error.
func (s *ClubService) logFailure(ctx context.Context, op string, kind club.CommandKind, caller club.Identity, err error) {
	attrs := []any{
		slog.String("operation", op),
		slog.String("caller", caller.String()),
		slog.Any("error", err),
	}
	if kind != "" {
		attrs = append(attrs, slog.String("command", kind.String()))
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrConflict):
		s.logger.WarnContext(ctx, "command rejected", attrs...)
	default:
		s.logger.ErrorContext(ctx, "command failed", attrs...)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return telemetry.ResultSuccess
	case errors.Is(err, domain.ErrUnauthorized):
		return telemetry.ResultUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return telemetry.ResultInvalid
	default:
		return telemetry.ResultError
	}
}
