// Package breaker wraps a storage backend with a circuit breaker, tracing,
// and per-operation metrics. After repeated backend failures the breaker
// opens and commands fail fast with domain.ErrUnavailable instead of
// piling up on a sick disk.
//
// Construction:
//
//	backend, _ := kv.Open(&cfg.Store)
//	store := breaker.New(backend, &cfg.Store.CircuitBreaker, metrics, logger)
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/clubstate/internal/adapters/kv"
	"github.com/jsamuelsen11/clubstate/internal/domain"
	"github.com/jsamuelsen11/clubstate/internal/platform/config"
	"github.com/jsamuelsen11/clubstate/internal/platform/telemetry"
)

// Name identifies the breaker in health checks.
const Name = "store-breaker"

// Compile-time interface check.
var _ kv.Backend = (*Store)(nil)

// Store guards a backend with a circuit breaker.
type Store struct {
	next    kv.Backend
	breaker *gobreaker.CircuitBreaker[[]byte]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New wraps next. If metrics is nil, metric recording is skipped.
func New(next kv.Backend, cfg *config.CircuitBreakerConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Store {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		// A missing key or a caller giving up says nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Store{
		next:    next,
		breaker: cb,
		metrics: metrics,
		logger:  logger,
	}
}

// Get reads key through the breaker.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	return s.do(ctx, "get", key, func(ctx context.Context) ([]byte, error) {
		return s.next.Get(ctx, key)
	})
}

// Put writes key through the breaker.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.do(ctx, "put", key, func(ctx context.Context) ([]byte, error) {
		return nil, s.next.Put(ctx, key, value)
	})
	return err
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return Name }

// HealthCheck reports the breaker state without touching the backend.
//
// State mapping:
//   - "closed"    - backend is operating normally; returns nil.
//   - "half-open" - breaker is probing recovery; returns a degraded error.
//   - "open"      - backend calls are being rejected; returns a failing error.
func (s *Store) HealthCheck(_ context.Context) error {
	state := s.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", s.next.Name())
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", s.next.Name())
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", s.next.Name(), state)
	}
}

// Close closes the wrapped backend.
func (s *Store) Close() error {
	return s.next.Close()
}

func (s *Store) do(ctx context.Context, op, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	start := time.Now()

	ctx, span := otel.GetTracerProvider().Tracer("kv").Start(ctx, "kv."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("store.backend", s.next.Name()),
			attribute.String("store.key", key),
		),
	)
	defer span.End()

	value, err := s.breaker.Execute(func() ([]byte, error) {
		return fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, s.next.Name(), err)
	}

	result := telemetry.ResultSuccess
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		result = telemetry.ResultError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.metrics.RecordStoreOp(ctx, s.next.Name(), op, result, start)

	return value, err
}

// toUint32 safely converts a non-negative int to uint32, clamping at the
// uint32 maximum. Negative values are treated as zero.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
