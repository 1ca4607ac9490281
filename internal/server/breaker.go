// breaker.go - Circuit breaker around the relay provider.
//
// Prevents hammering an unavailable storage provider: after repeated
// relay failures the circuit opens and uploads fail fast until the
// timeout elapses and a probe request is let through.
package server

import (
	"errors"
	"sync"
	"time"
)

// CircuitState represents the current state of a circuit breaker.
type CircuitState int

const (
	// StateClosed: Circuit is closed, requests flow normally
	StateClosed CircuitState = iota
	// StateOpen: Circuit is open, requests fail fast
	StateOpen
	// StateHalfOpen: Circuit is testing if service recovered
	StateHalfOpen
)

func (s CircuitState) String() string {
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

var (
	// ErrCircuitOpen is returned when circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned when half-open circuit receives too many requests.
	ErrTooManyRequests = errors.New("too many requests while circuit is half-open")
)

// CircuitBreaker implements the circuit breaker pattern.
type CircuitBreaker struct {
	mu sync.RWMutex

	maxFailures uint32        // Failures before opening circuit
	timeout     time.Duration // Time to wait before attempting recovery
	maxHalfOpen uint32        // Max concurrent requests in half-open state

	state            CircuitState
	failures         uint32
	lastFailureTime  time.Time
	halfOpenRequests uint32
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(maxFailures uint32, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures: maxFailures,
		timeout:     timeout,
		maxHalfOpen: 1, // Allow 1 request to test recovery
		state:       StateClosed,
	}
}

// Execute runs the given function with circuit breaker protection.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastFailureTime) > cb.timeout {
			cb.state = StateHalfOpen
			cb.halfOpenRequests = 0
			Info("circuit_breaker_half_open", map[string]any{
				"timeout_elapsed": cb.timeout.String(),
			})
		} else {
			return ErrCircuitOpen
		}

	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.maxHalfOpen {
			return ErrTooManyRequests
		}
		cb.halfOpenRequests++
	}

	cb.mu.Unlock()
	err := fn()
	cb.mu.Lock()

	if err != nil {
		cb.onFailure()
		return err
	}

	cb.onSuccess()
	return nil
}

// onSuccess handles a successful request. Caller holds the lock.
func (cb *CircuitBreaker) onSuccess() {
	if cb.state == StateHalfOpen {
		cb.state = StateClosed
		cb.failures = 0
		Info("circuit_breaker_closed", map[string]any{
			"reason": "recovery_successful",
		})
	}
}

// onFailure handles a failed request. Caller holds the lock.
func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	cb.lastFailureTime = time.Now()

	if cb.failures >= cb.maxFailures && cb.state != StateOpen {
		cb.state = StateOpen
		Warn("circuit_breaker_opened", map[string]any{
			"failures":     cb.failures,
			"max_failures": cb.maxFailures,
			"timeout":      cb.timeout.String(),
		})
	}
}

// GetState returns the current circuit state (thread-safe).
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Reset manually resets the circuit breaker to closed state.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failures = 0
	cb.halfOpenRequests = 0
}
