// Package registrar defines the registrar adapter interface and its
// implementations. Each registrar integration exposes one operation, a
// single-domain availability lookup; the dispatcher owns all batch, retry,
// and fallback policy.
package registrar

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited is returned when the registrar answers HTTP 429.
	// The dispatcher treats it as retryable with backoff.
	ErrRateLimited = errors.New("registrar rate limit exceeded")

	// ErrNotConfigured is returned when registrar credentials are absent.
	ErrNotConfigured = errors.New("registrar credentials not configured")
)

// Availability is a registrar's verdict for one domain.
type Availability struct {
	Available bool
	// Price is the registration price in standard currency units (USD).
	// Only meaningful when HasPrice is true.
	Price    float64
	HasPrice bool
}

// Client is a registrar adapter. Implementations must be safe for
// concurrent use: the dispatcher calls Check from multiple workers.
type Client interface {
	// Name identifies the adapter in logs and metrics.
	Name() string
	// Check looks up a single domain. The context carries the per-call
	// timeout; implementations must honor cancellation.
	Check(ctx context.Context, domain string) (Availability, error)
}
