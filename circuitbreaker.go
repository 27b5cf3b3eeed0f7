package qcircuit

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

/*
CircuitState represents the state of the circuit breaker guarding the remote
provider.
*/
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Remote provider is contacted normally
	CircuitOpen                         // Remote provider is skipped, tasks go to the simulator
	CircuitHalfOpen                     // A limited number of probes may reach the provider
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

/*
CircuitBreaker stops a Runner from contacting a remote provider that keeps
failing. A single task only ever retries once, but a library user pushing
many tasks through one Runner would otherwise pay the connection timeout on
every one of them.

The breaker operates in three states:
  - Closed: every task may try the remote provider
  - Open: failure threshold exceeded, tasks go straight to the simulator
  - Half-Open: after resetTimeout, a limited number of tasks probe the provider
*/
type CircuitBreaker struct {
	mu               sync.Mutex
	maxFailures      int           // Failures before opening
	resetTimeout     time.Duration // Time to wait before probing again
	halfOpenMax      int           // Successful probes needed to close
	failureCount     int           // Current count of consecutive failures
	state            CircuitState
	openTime         time.Time
	halfOpenAttempts int
	logger           *log.Logger
}

/*
NewCircuitBreaker creates a breaker in the closed state.

Parameters:
  - maxFailures: Number of consecutive failures before opening the circuit
  - resetTimeout: Duration to wait before probing an open circuit
  - halfOpenMax: Successful probes required to close a half-open circuit
  - logger: Destination for state transitions
*/
func NewCircuitBreaker(
	maxFailures int, resetTimeout time.Duration, halfOpenMax int, logger *log.Logger,
) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  halfOpenMax,
		state:        CircuitClosed,
		logger:       logger,
	}
}

// State returns the current state without changing it.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

/*
RecordFailure records a remote failure. Reaching maxFailures opens a closed
circuit, and any failure while half-open opens it again.
*/
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++

	switch {
	case cb.state == CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.openTime = time.Now()
		cb.logger.Warn("circuit breaker reopened from half-open state")
	case cb.state == CircuitClosed && cb.failureCount >= cb.maxFailures:
		cb.state = CircuitOpen
		cb.openTime = time.Now()
		cb.logger.Warn("circuit breaker opened", "failures", cb.failureCount)
	}
}

/*
RecordSuccess records a successful remote execution, closing a half-open
circuit after halfOpenMax successes and clearing the failure count.
*/
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitHalfOpen:
		cb.halfOpenAttempts++
		if cb.halfOpenAttempts >= cb.halfOpenMax {
			cb.state = CircuitClosed
			cb.failureCount = 0
			cb.halfOpenAttempts = 0
			cb.logger.Info("circuit breaker closed from half-open")
		}
	case CircuitClosed:
		cb.failureCount = 0
	}
}

// Allow reports whether the remote provider may be contacted now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.openTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenAttempts = 0
			return true
		}
		return false
	case CircuitHalfOpen:
		return cb.halfOpenAttempts < cb.halfOpenMax
	default:
		return false
	}
}
