// Package dispatcher orchestrates batched domain availability checks against
// a registrar adapter. Work is spread across a bounded worker pool pulling
// from a shared cursor; results land in a pre-sized buffer indexed by input
// position, so output order always matches input order no matter how the
// concurrent lookups complete. Persistent registrar failure trips a circuit
// breaker and routes the unresolved remainder of the batch to the synthetic
// fallback adapter.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonesrussell/domain-scout/internal/breaker"
	"github.com/jonesrussell/domain-scout/internal/domain"
	"github.com/jonesrussell/domain-scout/internal/logger"
	"github.com/jonesrussell/domain-scout/internal/metrics"
	"github.com/jonesrussell/domain-scout/internal/registrar"
	"github.com/jonesrussell/domain-scout/internal/retry"
)

// Policy is the single authoritative set of dispatch constants. It is shared
// across registrar adapters; adapters carry no policy of their own.
type Policy struct {
	// MaxWorkers bounds the number of simultaneously in-flight lookups.
	MaxWorkers int
	// MaxRetries is the number of additional attempts per domain after the
	// first, consumed per domain rather than per batch.
	MaxRetries int
	// MaxDomains caps the batch size; longer inputs are truncated.
	MaxDomains int
	// CheckTimeout bounds each individual lookup attempt.
	CheckTimeout time.Duration
	// BackoffBase is the base delay for exponential retry backoff.
	BackoffBase time.Duration
	// PremiumThreshold is the price above which an available domain is
	// reported as premium.
	PremiumThreshold float64
}

// DefaultPolicy returns the authoritative dispatch policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxWorkers:       5,
		MaxRetries:       2,
		MaxDomains:       8,
		CheckTimeout:     5 * time.Second,
		BackoffBase:      300 * time.Millisecond,
		PremiumThreshold: 50.0,
	}
}

// ResultCache caches clean registrar verdicts between batches.
// Implementations must tolerate concurrent use.
type ResultCache interface {
	Get(ctx context.Context, domainName string) (domain.CheckResult, bool)
	Set(ctx context.Context, result domain.CheckResult)
}

// Dispatcher coordinates availability checks for batches of domains.
type Dispatcher struct {
	client   registrar.Client
	fallback registrar.Client
	policy   Policy
	brk      *breaker.Breaker
	cache    ResultCache
	log      logger.Logger
	met      *metrics.Metrics
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithCache attaches a result cache consulted before any registrar call.
func WithCache(cache ResultCache) Option {
	return func(d *Dispatcher) {
		d.cache = cache
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(met *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.met = met
	}
}

// WithBreaker overrides the default circuit breaker. Used in tests to
// tighten thresholds.
func WithBreaker(brk *breaker.Breaker) Option {
	return func(d *Dispatcher) {
		d.brk = brk
	}
}

// New creates a Dispatcher. The client is the primary registrar adapter;
// fallback answers whenever the primary is unavailable. Passing the
// synthetic adapter as both makes the dispatcher fully offline.
func New(client, fallback registrar.Client, policy Policy, log logger.Logger, opts ...Option) *Dispatcher {
	if policy.MaxWorkers <= 0 {
		policy.MaxWorkers = DefaultPolicy().MaxWorkers
	}
	if policy.MaxDomains <= 0 {
		policy.MaxDomains = DefaultPolicy().MaxDomains
	}
	if policy.CheckTimeout <= 0 {
		policy.CheckTimeout = DefaultPolicy().CheckTimeout
	}
	if policy.BackoffBase <= 0 {
		policy.BackoffBase = DefaultPolicy().BackoffBase
	}
	if policy.PremiumThreshold <= 0 {
		policy.PremiumThreshold = DefaultPolicy().PremiumThreshold
	}

	d := &Dispatcher{
		client:   client,
		fallback: fallback,
		policy:   policy,
		log:      log,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.brk == nil {
		d.brk = breaker.New(breaker.Config{
			OnStateChange: func(from, to breaker.State) {
				log.Warn("Registrar circuit breaker state changed",
					logger.String("from", from.String()),
					logger.String("to", to.String()),
				)
				if to == breaker.StateOpen {
					d.met.IncBreakerTrip()
				}
			},
		})
	}

	return d
}

// CheckAvailability resolves one CheckResult per input domain, in input
// order. It never returns an error: individual failures are captured in
// the per-result ErrorMessage, and provider-wide failures degrade to the
// synthetic fallback. Batches longer than the policy cap are truncated.
func (d *Dispatcher) CheckAvailability(ctx context.Context, domains []string) []domain.CheckResult {
	if len(domains) == 0 {
		return []domain.CheckResult{}
	}

	if len(domains) > d.policy.MaxDomains {
		d.log.Warn("Truncating oversized batch",
			logger.Int("requested", len(domains)),
			logger.Int("cap", d.policy.MaxDomains),
		)
		domains = domains[:d.policy.MaxDomains]
	}

	results := make([]domain.CheckResult, len(domains))

	var cursor atomic.Int64
	workers := d.policy.MaxWorkers
	if workers > len(domains) {
		workers = len(domains)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= len(domains) {
					return
				}
				results[idx] = d.resolve(ctx, domains[idx])
			}
		}()
	}
	wg.Wait()

	return results
}

// resolve produces the verdict for a single domain.
func (d *Dispatcher) resolve(ctx context.Context, name string) domain.CheckResult {
	if d.cache != nil {
		if cached, ok := d.cache.Get(ctx, name); ok {
			return cached
		}
	}

	if !d.brk.Allow() {
		return d.synthetic(ctx, name)
	}

	start := time.Now()
	avail, err := d.checkWithRetry(ctx, name)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		d.brk.RecordSuccess()
		d.met.ObserveLookup(d.client.Name(), metrics.OutcomeOK, elapsed)
		result := d.toResult(name, avail)
		if d.cache != nil && d.client != d.fallback {
			d.cache.Set(ctx, result)
		}
		return result

	case errors.Is(err, registrar.ErrNotConfigured):
		return d.synthetic(ctx, name)

	case errors.Is(err, context.DeadlineExceeded):
		// Timeouts are terminal for the domain: a slow registrar is
		// assumed slow for the rest of this call too.
		d.met.ObserveLookup(d.client.Name(), metrics.OutcomeTimeout, elapsed)
		return domain.CheckResult{
			Domain:       name,
			ErrorMessage: "availability check timed out",
		}

	case errors.Is(err, registrar.ErrRateLimited):
		d.met.ObserveLookup(d.client.Name(), metrics.OutcomeRateLimited, elapsed)
		return domain.CheckResult{
			Domain:       name,
			ErrorMessage: fmt.Sprintf("rate limited after %d attempts", d.policy.MaxRetries+1),
		}

	default:
		// Transport or parse failure. Enough of these in a row indicate a
		// provider-wide outage, which opens the breaker and shifts the
		// unresolved remainder of the batch to the synthetic fallback.
		d.brk.RecordFailure()
		d.met.ObserveLookup(d.client.Name(), metrics.OutcomeError, elapsed)
		d.log.Warn("Registrar lookup failed",
			logger.String("domain", name),
			logger.Error(err),
		)
		return domain.CheckResult{
			Domain:       name,
			ErrorMessage: err.Error(),
		}
	}
}

// checkWithRetry performs the per-domain attempt loop. Rate limiting and
// transport failures are retried with exponential backoff; timeouts are not.
func (d *Dispatcher) checkWithRetry(ctx context.Context, name string) (registrar.Availability, error) {
	var avail registrar.Availability

	cfg := retry.Config{
		MaxRetries:  d.policy.MaxRetries,
		BackoffBase: d.policy.BackoffBase,
		IsRetryable: isRetryable,
	}

	err := retry.Do(ctx, cfg, func() error {
		callCtx, cancel := context.WithTimeout(ctx, d.policy.CheckTimeout)
		defer cancel()

		var checkErr error
		avail, checkErr = d.client.Check(callCtx, name)
		return checkErr
	})

	return avail, err
}

// isRetryable classifies per-attempt errors. Timeouts and missing
// configuration never earn another attempt.
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, registrar.ErrNotConfigured) {
		return false
	}
	return true
}

// synthetic resolves a domain through the fallback adapter.
// The fallback is deterministic and local, so it cannot fail.
func (d *Dispatcher) synthetic(ctx context.Context, name string) domain.CheckResult {
	d.met.IncFallback()
	avail, err := d.fallback.Check(ctx, name)
	if err != nil {
		return domain.CheckResult{Domain: name, ErrorMessage: err.Error()}
	}
	return d.toResult(name, avail)
}

// toResult converts a registrar verdict into a CheckResult, deriving the
// premium flag from the shared price threshold.
func (d *Dispatcher) toResult(name string, avail registrar.Availability) domain.CheckResult {
	result := domain.CheckResult{
		Domain:    name,
		Available: avail.Available,
	}

	if avail.Available && avail.HasPrice && avail.Price > d.policy.PremiumThreshold {
		result.Premium = true
		price := avail.Price
		result.Price = &price
	}

	return result
}
