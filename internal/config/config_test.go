package config

import (
	"errors"
	"testing"
	"time"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assertStringEqual(t, "service.name", defaultServiceName, cfg.Service.Name)
	assertStringEqual(t, "service.version", defaultVersion, cfg.Service.Version)
	assertIntEqual(t, "service.port", defaultServicePort, cfg.Service.Port)
	assertIntEqual(t, "service.max_suggestions", defaultMaxSuggestions, cfg.Service.MaxSuggestions)

	assertStringEqual(t, "registrar.base_url", defaultRegistrarBaseURL, cfg.Registrar.BaseURL)

	assertIntEqual(t, "dispatcher.max_workers", defaultMaxWorkers, cfg.Dispatcher.MaxWorkers)
	assertIntEqual(t, "dispatcher.max_retries", defaultMaxRetries, cfg.Dispatcher.MaxRetries)
	assertIntEqual(t, "dispatcher.max_domains", defaultMaxDomains, cfg.Dispatcher.MaxDomains)

	if cfg.Dispatcher.CheckTimeout != defaultCheckTimeoutS*time.Second {
		t.Errorf("dispatcher.check_timeout: got %v, want %v",
			cfg.Dispatcher.CheckTimeout, defaultCheckTimeoutS*time.Second)
	}
	if cfg.Dispatcher.BackoffBase != defaultBackoffBaseMS*time.Millisecond {
		t.Errorf("dispatcher.backoff_base: got %v, want %v",
			cfg.Dispatcher.BackoffBase, defaultBackoffBaseMS*time.Millisecond)
	}
	if cfg.Dispatcher.PremiumThreshold != defaultPremiumCutoff {
		t.Errorf("dispatcher.premium_threshold: got %v, want %v",
			cfg.Dispatcher.PremiumThreshold, defaultPremiumCutoff)
	}

	assertStringEqual(t, "database.host", defaultDBHost, cfg.Database.Host)
	assertIntEqual(t, "database.port", defaultDBPort, cfg.Database.Port)
	assertStringEqual(t, "database.user", defaultDBUser, cfg.Database.User)
	assertStringEqual(t, "database.database", defaultDBName, cfg.Database.Database)
	assertStringEqual(t, "database.sslmode", defaultDBSSLMode, cfg.Database.SSLMode)

	if cfg.Cache.TTL != defaultCacheTTLMin*time.Minute {
		t.Errorf("cache.ttl: got %v, want %v", cfg.Cache.TTL, defaultCacheTTLMin*time.Minute)
	}

	assertIntEqual(t, "rate_limit.max_checks_per_minute",
		defaultMaxChecksPerMinute, cfg.RateLimit.MaxChecksPerMinute)
	assertIntEqual(t, "rate_limit.window_seconds",
		defaultWindowSeconds, cfg.RateLimit.WindowSeconds)

	assertStringEqual(t, "logging.level", defaultLoggingLevel, cfg.Logging.Level)
}

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Service.Port = 70000

	assertValidationError(t, cfg, "service.port")
}

func TestValidate_InvalidWorkers(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Dispatcher.MaxWorkers = -1

	assertValidationError(t, cfg, "dispatcher.max_workers")
}

func TestValidate_CacheEnabledWithoutAddr(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Cache.Enabled = true
	cfg.Cache.Addr = ""

	assertValidationError(t, cfg, "cache.addr")
}

func TestRegistrarConfigured(t *testing.T) {
	r := RegistrarConfig{}
	if r.Configured() {
		t.Fatal("expected unconfigured without credentials")
	}

	r.APIKey = "key"
	if r.Configured() {
		t.Fatal("expected unconfigured without a secret")
	}

	r.APISecret = "secret"
	if !r.Configured() {
		t.Fatal("expected configured with both credentials")
	}
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "scout",
		Password: "hunter2",
		Database: "domain_scout",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=scout password=hunter2 dbname=domain_scout sslmode=require"
	if got := db.DSN(); got != want {
		t.Fatalf("DSN mismatch:\n got %q\nwant %q", got, want)
	}
}

func assertStringEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

func assertIntEqual(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %d, want %d", field, got, want)
	}
}

func assertValidationError(t *testing.T, cfg *Config, field string) {
	t.Helper()

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error for %s, got nil", field)
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != field {
		t.Fatalf("expected error on %s, got %s", field, vErr.Field)
	}
}
