package config_test

import (
	"testing"
	"time"

	"github.com/jsamuelsen11/clubstate/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("Telemetry.Endpoint is empty, want non-empty for prod")
	}
	if cfg.Store.Backend != config.BackendSQLite {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, config.BackendSQLite)
	}
	if cfg.Store.Codec != "cbor" {
		t.Errorf("Store.Codec = %q, want \"cbor\"", cfg.Store.Codec)
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Store.Codec != "json" {
		t.Errorf("Store.Codec = %q, want \"json\" (from base)", cfg.Store.Codec)
	}
	if cfg.Store.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("Store.CircuitBreaker.MaxFailures = %d, want 5 (from base)",
			cfg.Store.CircuitBreaker.MaxFailures)
	}
	if cfg.Server.RateLimit.BurstSize != 100 {
		t.Errorf("Server.RateLimit.BurstSize = %d, want 100 (from base)", cfg.Server.RateLimit.BurstSize)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_READ_TIMEOUT", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := 15 * time.Second
	if cfg.Server.ReadTimeout != want {
		t.Errorf("Server.ReadTimeout = %v, want %v (env override)", cfg.Server.ReadTimeout, want)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_STORE_CIRCUIT_BREAKER_MAX_FAILURES", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Store.CircuitBreaker.MaxFailures != 7 {
		t.Errorf("Store.CircuitBreaker.MaxFailures = %d, want 7 (env override)",
			cfg.Store.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_ProfileEnvIgnoredAsKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_PROFILE", "prod")

	if _, err := config.Load("local"); err != nil {
		t.Fatalf("Load error: %v", err)
	}
}

func TestProfileFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		set   bool
		want  string
	}{
		{name: "unset", want: config.DefaultProfile},
		{name: "blank", value: "  ", set: true, want: config.DefaultProfile},
		{name: "prod", value: "prod", set: true, want: "prod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lookup := func(string) (string, bool) { return tt.value, tt.set }
			if got := config.ProfileFromEnv(lookup); got != tt.want {
				t.Errorf("ProfileFromEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	_, err := config.Load("nonexistent")
	if err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for port=0")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Log.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid log level")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_Store(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.StoreConfig)
	}{
		{name: "unknown backend", mutate: func(s *config.StoreConfig) { s.Backend = "redis" }},
		{name: "bolt without path", mutate: func(s *config.StoreConfig) { s.Path = " " }},
		{name: "sqlite without path", mutate: func(s *config.StoreConfig) {
			s.Backend = config.BackendSQLite
			s.Path = ""
		}},
		{name: "unknown codec", mutate: func(s *config.StoreConfig) { s.Codec = "xml" }},
		{name: "zero max failures", mutate: func(s *config.StoreConfig) { s.CircuitBreaker.MaxFailures = 0 }},
		{name: "zero breaker timeout", mutate: func(s *config.StoreConfig) { s.CircuitBreaker.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.mutate(&cfg.Store)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() returned nil, want error")
			}
		})
	}
}

func TestValidate_MemoryBackendNeedsNoPath(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Store.Backend = config.BackendMemory
	cfg.Store.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_RateLimitBurst(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Server.RateLimit.BurstSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for zero burst with limiting enabled")
	}

	cfg.Server.RateLimit.RequestsPerSecond = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil when limiting is disabled", err)
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

func TestClientConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.ClientConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.ClientConfig) {}},
		{name: "empty base url", mutate: func(c *config.ClientConfig) { c.BaseURL = "" }, wantErr: true},
		{name: "relative base url", mutate: func(c *config.ClientConfig) { c.BaseURL = "/api" }, wantErr: true},
		{name: "unsupported scheme", mutate: func(c *config.ClientConfig) { c.BaseURL = "ftp://host" }, wantErr: true},
		{name: "zero attempts", mutate: func(c *config.ClientConfig) { c.Retry.MaxAttempts = 0 }, wantErr: true},
		{name: "shrinking backoff", mutate: func(c *config.ClientConfig) { c.Retry.Multiplier = 0.5 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *config.ClientConfig) { c.Timeout = 0 }, wantErr: true},
		{name: "negative rate", mutate: func(c *config.ClientConfig) { c.RateLimit.RequestsPerSecond = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultClientConfig("http://localhost:8080")
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
			RateLimit: config.RateLimitConfig{
				RequestsPerSecond: 50,
				BurstSize:         100,
			},
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Store: config.StoreConfig{
			Backend: config.BackendBolt,
			Path:    "data/club.db",
			Codec:   "json",
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
	}
}
