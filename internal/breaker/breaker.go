// Package breaker provides the circuit breaker guarding the registrar path.
// When the registrar fails persistently, the breaker opens and the dispatcher
// serves synthetic availability data until the registrar recovers.
package breaker

import (
	"sync"
	"time"
)

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed means registrar calls are allowed.
	StateClosed State = iota
	// StateOpen means registrar calls are blocked.
	StateOpen
	// StateHalfOpen means a probe call is testing whether the registrar recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Default thresholds.
const (
	defaultFailureThreshold = 3
	defaultSuccessThreshold = 1
	defaultOpenTimeout      = 30 * time.Second
)

// Config configures a circuit breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes
	// required to close again.
	SuccessThreshold int
	// OpenTimeout is how long the circuit stays open before allowing a probe.
	OpenTimeout time.Duration
	// OnStateChange is an optional callback invoked on transitions.
	OnStateChange func(from, to State)
}

// Breaker implements a consecutive-failure circuit breaker.
type Breaker struct {
	mu              sync.Mutex
	state           State
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	config          Config
}

// New creates a circuit breaker with the given configuration.
func New(config Config) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaultFailureThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaultSuccessThreshold
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = defaultOpenTimeout
	}

	return &Breaker{
		state:  StateClosed,
		config: config,
	}
}

// Allow reports whether a registrar call may proceed right now.
// An open breaker transitions to half-open once OpenTimeout has elapsed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.lastFailureTime) < b.config.OpenTimeout {
			return false
		}
		b.transitionTo(StateHalfOpen)
	}

	return true
}

// RecordSuccess records a successful registrar call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount = 0

	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	}
}

// RecordFailure records a failed registrar call. Enough consecutive
// failures open the circuit; any failure during half-open reopens it.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.lastFailureTime = time.Now()

	switch b.state {
	case StateClosed:
		if b.failureCount >= b.config.FailureThreshold {
			b.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		b.transitionTo(StateOpen)
	case StateOpen:
	}
}

// Trip forces the circuit open immediately, regardless of counters.
// The dispatcher uses it on batch-level registrar failures.
func (b *Breaker) Trip() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailureTime = time.Now()
	b.transitionTo(StateOpen)
}

// State returns the current state of the circuit breaker.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the circuit and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
}

// transitionTo moves to a new state. Callers must hold b.mu.
func (b *Breaker) transitionTo(newState State) {
	if b.state == newState {
		return
	}

	oldState := b.state
	b.state = newState
	b.failureCount = 0
	b.successCount = 0

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(oldState, newState)
	}
}
