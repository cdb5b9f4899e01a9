package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestBackoff_ExponentialIncrease(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     10 * time.Second,
		multiplier:      2.0,
	}

	// Run multiple samples to account for jitter.
	const samples = 100
	for attempt := 1; attempt <= 3; attempt++ {
		baseDelay := float64(100*time.Millisecond) * pow(2.0, attempt-1)
		minExpected := time.Duration(baseDelay * (1 - jitterFraction))
		maxExpected := time.Duration(baseDelay * (1 + jitterFraction))

		for range samples {
			delay := backoff(attempt, cfg)
			if delay < minExpected || delay > maxExpected {
				t.Errorf("attempt %d: delay %v not in [%v, %v]", attempt, delay, minExpected, maxExpected)
			}
		}
	}
}

func TestBackoff_CappedAtMaxInterval(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		multiplier:      2.0,
	}

	// Attempt 10 would be 100ms * 2^9 = 51.2s without cap.
	maxWithJitter := time.Duration(float64(cfg.maxInterval) * (1 + jitterFraction))

	const samples = 100
	for range samples {
		delay := backoff(10, cfg)
		if delay > maxWithJitter {
			t.Errorf("delay %v exceeds max interval with jitter %v", delay, maxWithJitter)
		}
	}
}

func TestBackoff_JitterWithinBounds(t *testing.T) {
	t.Parallel()

	cfg := retryConfig{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     10 * time.Second,
		multiplier:      2.0,
	}

	baseDelay := 100 * time.Millisecond
	minExpected := time.Duration(float64(baseDelay) * (1 - jitterFraction))
	maxExpected := time.Duration(float64(baseDelay) * (1 + jitterFraction))

	const samples = 1000
	for range samples {
		delay := backoff(1, cfg)
		if delay < minExpected || delay > maxExpected {
			t.Errorf("delay %v not in [%v, %v]", delay, minExpected, maxExpected)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	dialErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	readErr := &net.OpError{Op: "read", Err: errors.New("connection reset")}

	tests := []struct {
		name       string
		err        error
		idempotent bool
		want       bool
	}{
		{name: "nil", err: nil, idempotent: true, want: false},
		{name: "canceled", err: context.Canceled, idempotent: true, want: false},
		{name: "deadline", err: context.DeadlineExceeded, idempotent: true, want: false},
		{name: "dial error idempotent", err: dialErr, idempotent: true, want: true},
		{name: "dial error non-idempotent", err: dialErr, idempotent: false, want: true},
		{name: "read error idempotent", err: readErr, idempotent: true, want: true},
		{name: "read error non-idempotent", err: readErr, idempotent: false, want: false},
		{name: "generic idempotent", err: errors.New("something failed"), idempotent: true, want: true},
		{name: "generic non-idempotent", err: errors.New("something failed"), idempotent: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isRetryable(tt.err, tt.idempotent); got != tt.want {
				t.Errorf("isRetryable(%v, %v) = %v, want %v", tt.err, tt.idempotent, got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		idempotent bool
		want       bool
	}{
		{name: "200 GET", statusCode: http.StatusOK, idempotent: true, want: false},
		{name: "400 GET", statusCode: http.StatusBadRequest, idempotent: true, want: false},
		{name: "404 GET", statusCode: http.StatusNotFound, idempotent: true, want: false},
		{name: "429 GET", statusCode: http.StatusTooManyRequests, idempotent: true, want: true},
		{name: "429 POST", statusCode: http.StatusTooManyRequests, idempotent: false, want: true},
		{name: "500 GET", statusCode: http.StatusInternalServerError, idempotent: true, want: true},
		{name: "503 GET", statusCode: http.StatusServiceUnavailable, idempotent: true, want: true},
		{name: "503 POST", statusCode: http.StatusServiceUnavailable, idempotent: false, want: false},
		{name: "403 POST", statusCode: http.StatusForbidden, idempotent: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isRetryableStatus(tt.statusCode, tt.idempotent); got != tt.want {
				t.Errorf("isRetryableStatus(%d, %v) = %v, want %v", tt.statusCode, tt.idempotent, got, tt.want)
			}
		})
	}
}

func TestIsIdempotent(t *testing.T) {
	t.Parallel()

	for method, want := range map[string]bool{
		http.MethodGet:    true,
		http.MethodHead:   true,
		http.MethodPost:   false,
		http.MethodPut:    false,
		http.MethodDelete: false,
	} {
		if got := isIdempotent(method); got != want {
			t.Errorf("isIdempotent(%q) = %v, want %v", method, got, want)
		}
	}
}

func TestSecureRandFloat64_InRange(t *testing.T) {
	t.Parallel()

	const samples = 1000
	for range samples {
		v := secureRandFloat64()
		if v < 0 || v >= 1 {
			t.Errorf("secureRandFloat64() = %v, want [0, 1)", v)
		}
	}
}

// pow is a test helper for integer-base exponentiation.
func pow(base float64, exp int) float64 {
	result := 1.0
	for range exp {
		result *= base
	}
	return result
}
