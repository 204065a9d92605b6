package observability

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// CircuitBreakerState represents the state of a circuit breaker.
type CircuitBreakerState int

const (
	// StateClosed means calls go through.
	StateClosed CircuitBreakerState = iota
	// StateOpen means calls are refused until the cool-down elapses.
	StateOpen
	// StateHalfOpen lets a few trial calls through.
	StateHalfOpen
)

func (s CircuitBreakerState) String() string {
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

// ErrCircuitOpen is returned by Call without invoking fn.
var ErrCircuitOpen = errors.New("circuit open")

// CircuitBreaker stops hammering an optional dependency (the ranking cache)
// once it keeps failing, so requests fall back to the database path quickly.
type CircuitBreaker struct {
	name        string
	maxFailures int
	coolDown    time.Duration
	halfOpenMax int
	now         func() time.Time

	mu           sync.Mutex
	state        CircuitBreakerState
	failures     int
	successCount int
	openedAt     time.Time
}

// NewCircuitBreaker opens after maxFailures consecutive failures and retries after coolDown.
func NewCircuitBreaker(name string, maxFailures int, coolDown time.Duration) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		name:        name,
		maxFailures: maxFailures,
		coolDown:    coolDown,
		halfOpenMax: 2,
		now:         time.Now,
	}
}

// Call executes fn unless the breaker is open.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if !cb.allow() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}
	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.coolDown {
		cb.state = StateHalfOpen
		cb.successCount = 0
		RecordCircuitBreakerStatus(cb.name, int(cb.state))
	}
	return cb.state != StateOpen
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = StateOpen
			cb.openedAt = cb.now()
		}
	} else {
		switch cb.state {
		case StateClosed:
			cb.failures = 0
		case StateHalfOpen:
			cb.successCount++
			if cb.successCount >= cb.halfOpenMax {
				cb.state = StateClosed
				cb.failures = 0
				cb.successCount = 0
			}
		}
	}
	RecordCircuitBreakerStatus(cb.name, int(cb.state))
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset closes the breaker.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.failures = 0
	cb.successCount = 0
	RecordCircuitBreakerStatus(cb.name, int(cb.state))
}
