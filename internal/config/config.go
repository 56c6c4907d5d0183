package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "domain-scout"
	defaultServicePort  = 8095
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"

	defaultDBHost    = "localhost"
	defaultDBPort    = 5432
	defaultDBName    = "domain_scout"
	defaultDBUser    = "postgres"
	defaultDBSSLMode = "disable"

	defaultRegistrarBaseURL = "https://api.ote-godaddy.com"

	defaultMaxWorkers     = 5
	defaultMaxRetries     = 2
	defaultMaxDomains     = 8
	defaultCheckTimeoutS  = 5
	defaultBackoffBaseMS  = 300
	defaultPremiumCutoff  = 50.0
	defaultMaxSuggestions = 20

	defaultMaxChecksPerMinute = 20
	defaultWindowSeconds      = 60

	defaultCacheTTLMin = 10

	minPort = 1
	maxPort = 65535
)

// Config holds the application configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Registrar  RegistrarConfig  `yaml:"registrar"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	Port           int    `env:"DOMAIN_SCOUT_PORT" yaml:"port"`
	Debug          bool   `env:"APP_DEBUG"         yaml:"debug"`
	MaxSuggestions int    `yaml:"max_suggestions"`
}

// RegistrarConfig holds the registrar API credentials and endpoint.
// Missing credentials are not an error: the dispatcher then serves
// synthetic availability data instead of calling the registrar.
type RegistrarConfig struct {
	APIKey    string `env:"GODADDY_API_KEY"    yaml:"api_key"`
	APISecret string `env:"GODADDY_API_SECRET" yaml:"api_secret"`
	BaseURL   string `env:"GODADDY_BASE_URL"   yaml:"base_url"`
}

// Configured reports whether registrar credentials are present.
func (r *RegistrarConfig) Configured() bool {
	return r.APIKey != "" && r.APISecret != ""
}

// DispatcherConfig holds the availability-check policy. One policy set is
// shared by every registrar adapter; adapters carry no constants of their own.
type DispatcherConfig struct {
	MaxWorkers       int           `yaml:"max_workers"`
	MaxRetries       int           `yaml:"max_retries"`
	MaxDomains       int           `yaml:"max_domains"`
	CheckTimeout     time.Duration `yaml:"check_timeout"`
	BackoffBase      time.Duration `yaml:"backoff_base"`
	PremiumThreshold float64       `yaml:"premium_threshold"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_DOMAIN_SCOUT_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_DOMAIN_SCOUT_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_DOMAIN_SCOUT_USER"     yaml:"user"`
	Password string `env:"POSTGRES_DOMAIN_SCOUT_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_DOMAIN_SCOUT_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_DOMAIN_SCOUT_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// CacheConfig holds the optional Redis availability cache configuration.
type CacheConfig struct {
	Enabled  bool          `env:"CACHE_ENABLED"  yaml:"enabled"`
	Addr     string        `env:"REDIS_ADDR"     yaml:"addr"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// RateLimitConfig holds per-IP rate limiting for the check endpoints.
type RateLimitConfig struct {
	MaxChecksPerMinute int `yaml:"max_checks_per_minute"`
	WindowSeconds      int `yaml:"window_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)
	// Env always wins, including over defaults.
	applyEnvOverrides(cfg)
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setRegistrarDefaults(&cfg.Registrar)
	setDispatcherDefaults(&cfg.Dispatcher)
	setDatabaseDefaults(&cfg.Database)
	setCacheDefaults(&cfg.Cache)
	setRateLimitDefaults(&cfg.RateLimit)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.MaxSuggestions == 0 {
		svc.MaxSuggestions = defaultMaxSuggestions
	}
}

func setRegistrarDefaults(r *RegistrarConfig) {
	if r.BaseURL == "" {
		r.BaseURL = defaultRegistrarBaseURL
	}
}

func setDispatcherDefaults(d *DispatcherConfig) {
	if d.MaxWorkers == 0 {
		d.MaxWorkers = defaultMaxWorkers
	}
	if d.MaxRetries == 0 {
		d.MaxRetries = defaultMaxRetries
	}
	if d.MaxDomains == 0 {
		d.MaxDomains = defaultMaxDomains
	}
	if d.CheckTimeout == 0 {
		d.CheckTimeout = defaultCheckTimeoutS * time.Second
	}
	if d.BackoffBase == 0 {
		d.BackoffBase = defaultBackoffBaseMS * time.Millisecond
	}
	if d.PremiumThreshold == 0 {
		d.PremiumThreshold = defaultPremiumCutoff
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setCacheDefaults(c *CacheConfig) {
	if c.TTL == 0 {
		c.TTL = defaultCacheTTLMin * time.Minute
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.MaxChecksPerMinute == 0 {
		rl.MaxChecksPerMinute = defaultMaxChecksPerMinute
	}
	if rl.WindowSeconds == 0 {
		rl.WindowSeconds = defaultWindowSeconds
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < minPort || c.Service.Port > maxPort {
		return &ValidationError{Field: "service.port", Message: "must be between 1 and 65535"}
	}
	if c.Dispatcher.MaxWorkers < 1 {
		return &ValidationError{Field: "dispatcher.max_workers", Message: "must be at least 1"}
	}
	if c.Dispatcher.MaxRetries < 0 {
		return &ValidationError{Field: "dispatcher.max_retries", Message: "must not be negative"}
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return &ValidationError{Field: "cache.addr", Message: "is required when cache is enabled"}
	}
	return nil
}
