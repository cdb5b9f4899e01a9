package config

import "time"

const (
	defaultServerPort = 8080

	defaultRateLimitRPS   = 50.0
	defaultRateLimitBurst = 100

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultClientTimeout        = 30 * time.Second
	defaultRetryMaxAttempts     = 3
	defaultRetryInitialInterval = 100 * time.Millisecond
	defaultRetryMaxInterval     = 2 * time.Second
	defaultRetryMultiplier      = 2.0
	defaultClientBreakerTimeout = 30 * time.Second
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                           "0.0.0.0",
		"server.port":                           defaultServerPort,
		"server.read_timeout":                   "5s",
		"server.write_timeout":                  "10s",
		"server.idle_timeout":                   "120s",
		"server.rate_limit.requests_per_second": defaultRateLimitRPS,
		"server.rate_limit.burst_size":          defaultRateLimitBurst,

		"log.level":  "info",
		"log.format": "json",

		"store.backend":                         BackendBolt,
		"store.path":                            "data/club.db",
		"store.codec":                           "json",
		"store.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"store.circuit_breaker.timeout":         "30s",
		"store.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "clubstate",
	}
}

// DefaultClientConfig returns client settings for the server at baseURL.
// Client-side rate limiting is off by default.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL: baseURL,
		Timeout: defaultClientTimeout,
		Retry: RetryConfig{
			MaxAttempts:     defaultRetryMaxAttempts,
			InitialInterval: defaultRetryInitialInterval,
			MaxInterval:     defaultRetryMaxInterval,
			Multiplier:      defaultRetryMultiplier,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures:   defaultCircuitBreakerMaxFailures,
			Timeout:       defaultClientBreakerTimeout,
			HalfOpenLimit: defaultCircuitBreakerHalfOpen,
		},
	}
}
