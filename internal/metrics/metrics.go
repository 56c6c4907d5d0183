// Package metrics exposes Prometheus instrumentation for the availability
// dispatcher and registrar adapters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing, which keeps tests free of registry setup.
type Metrics struct {
	lookups        *prometheus.CounterVec
	lookupDuration prometheus.Histogram
	fallbacks      prometheus.Counter
	breakerTrips   prometheus.Counter
}

// New creates and registers the service collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domainscout_registrar_lookups_total",
			Help: "Registrar availability lookups by adapter and outcome.",
		}, []string{"adapter", "outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "domainscout_registrar_lookup_duration_seconds",
			Help:    "Latency of individual registrar lookups.",
			Buckets: prometheus.DefBuckets,
		}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "domainscout_synthetic_fallbacks_total",
			Help: "Domains resolved by the synthetic fallback.",
		}),
		breakerTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "domainscout_breaker_trips_total",
			Help: "Times the registrar circuit breaker opened.",
		}),
	}

	reg.MustRegister(m.lookups, m.lookupDuration, m.fallbacks, m.breakerTrips)
	return m
}

// Lookup outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeTimeout     = "timeout"
	OutcomeRateLimited = "rate_limited"
)

// ObserveLookup records one registrar lookup.
func (m *Metrics) ObserveLookup(adapter, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(adapter, outcome).Inc()
	m.lookupDuration.Observe(d.Seconds())
}

// IncFallback counts one domain resolved synthetically.
func (m *Metrics) IncFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// IncBreakerTrip counts one circuit breaker opening.
func (m *Metrics) IncBreakerTrip() {
	if m == nil {
		return
	}
	m.breakerTrips.Inc()
}
