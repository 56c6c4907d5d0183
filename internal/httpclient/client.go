// Package httpclient builds the outbound HTTP clients used by registrar
// adapters, with pooled connections and conservative transport timeouts.
package httpclient

import (
	"net/http"
	"time"
)

const (
	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum idle connections per host.
	DefaultMaxIdleConnsPerHost = 10

	// DefaultIdleConnTimeout is the default idle connection timeout.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultTLSHandshakeTimeout is the maximum time to wait for a TLS handshake.
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// Config configures an outbound HTTP client.
type Config struct {
	// Timeout limits each request end to end. Zero means no client-level
	// timeout; callers then bound requests via context deadlines.
	Timeout time.Duration

	// MaxIdleConns controls idle keep-alive connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls idle keep-alive connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays open.
	IdleConnTimeout time.Duration
}

// New creates an HTTP client with pooled transport settings.
// If cfg is nil, defaults are used throughout.
func New(cfg *Config) *http.Client {
	if cfg == nil {
		cfg = &Config{}
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = DefaultMaxIdleConns
	}

	maxIdleConnsPerHost := cfg.MaxIdleConnsPerHost
	if maxIdleConnsPerHost == 0 {
		maxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}

	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = DefaultIdleConnTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: DefaultTLSHandshakeTimeout,
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
}
