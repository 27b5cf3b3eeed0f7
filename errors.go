package qcircuit

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEligibleBackend is returned when the provider lists no operational,
	// non-simulator backend with enough qubits.
	ErrNoEligibleBackend = errors.New("no eligible quantum backend available")

	// ErrBreakerOpen is returned when repeated remote failures have opened the
	// circuit breaker and the remote provider is not being contacted.
	ErrBreakerOpen = errors.New("remote provider suppressed by open circuit breaker")

	// ErrTargetOutOfRange signals an oracle target outside [0, 2^n).
	ErrTargetOutOfRange = errors.New("target index out of range for register")

	// ErrCircuitTooLarge is returned by the simulator for dense circuits wider
	// than its configured limit.
	ErrCircuitTooLarge = errors.New("circuit exceeds simulator qubit limit")

	// ErrRemoteDisabled is returned when remote execution is switched off.
	ErrRemoteDisabled = errors.New("remote execution disabled")
)

/*
ConnectivityError wraps any failure to establish a session with the remote
provider. It is always recovered by falling back to the local simulator.
*/
type ConnectivityError struct {
	Provider string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Provider, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

/*
ExecutionError wraps a submission or runtime failure on a named backend.
*/
type ExecutionError struct {
	Backend string
	JobID   string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.JobID == "" {
		return fmt.Sprintf("execute on %s: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("execute job %s on %s: %v", e.JobID, e.Backend, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// TaskError reports a task descriptor field with an unusable value.
type TaskError struct {
	Field  string
	Reason string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
