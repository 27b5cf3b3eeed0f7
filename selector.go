package qcircuit

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

/*
Selection is the outcome of choosing an execution target. When the simulator
was chosen because of a failure, Reason carries that failure so the fallback
is an explicit, inspectable branch rather than a swallowed error.
*/
type Selection struct {
	Target           Backend
	Fallback         Backend // nil when Target already is the simulator
	UsedRealHardware bool
	Reason           error
}

/*
Selector picks the execution target for a circuit: the operational hardware
backend with the shortest queue when the remote provider is reachable, the
local simulator otherwise. It never fails.
*/
type Selector struct {
	provider  Provider
	simulator Backend
	breaker   *CircuitBreaker
	logger    *log.Logger
}

/*
NewSelector creates a selector.

Parameters:
  - provider: Remote provider; nil means remote execution is disabled
  - simulator: Local target used for every fallback
  - breaker: Optional guard that skips a provider which keeps failing
  - logger: Destination for selection and fallback lines
*/
func NewSelector(provider Provider, simulator Backend, breaker *CircuitBreaker, logger *log.Logger) *Selector {
	return &Selector{
		provider:  provider,
		simulator: simulator,
		breaker:   breaker,
		logger:    logger,
	}
}

/*
Select chooses a target able to run a circuit of requiredQubits qubits.

Eligible remote candidates have enough qubits, are operational and are not
simulators. Among them the one with the fewest pending jobs wins; equal
queues keep the provider's listing order.
*/
func (s *Selector) Select(ctx context.Context, requiredQubits int) *Selection {
	if s.provider == nil {
		return s.fallback(ErrRemoteDisabled)
	}

	if s.breaker != nil && !s.breaker.Allow() {
		return s.fallback(ErrBreakerOpen)
	}

	if err := s.provider.Connect(ctx); err != nil {
		s.recordFailure()
		return s.fallback(&ConnectivityError{Provider: s.provider.Name(), Err: err})
	}

	candidates, err := s.eligible(ctx, requiredQubits)
	if err != nil {
		s.recordFailure()
		return s.fallback(&ConnectivityError{Provider: s.provider.Name(), Err: err})
	}

	if len(candidates) == 0 {
		return s.fallback(fmt.Errorf("%w: %d qubits required", ErrNoEligibleBackend, requiredQubits))
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return cmp.Compare(a.PendingJobs, b.PendingJobs)
	})

	chosen := candidates[0]
	s.logger.Info("selected remote backend",
		"backend", chosen.Name, "pending", chosen.PendingJobs, "qubits", chosen.QubitCapacity)

	return &Selection{
		Target:           NewRemoteBackend(s.provider, chosen),
		Fallback:         s.simulator,
		UsedRealHardware: true,
	}
}

// eligible lists the candidates, turning a panicking provider into an error.
func (s *Selector) eligible(ctx context.Context, requiredQubits int) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("listing backends: %v", r)
		}
	}()

	listed, err := s.provider.ListBackends(ctx, func(c Candidate) bool {
		return c.Eligible(requiredQubits)
	})
	if err != nil {
		return nil, err
	}

	out = make([]Candidate, 0, len(listed))
	for _, c := range listed {
		if c.Eligible(requiredQubits) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *Selector) fallback(reason error) *Selection {
	s.logger.Warn("using local simulator", "reason", reason)

	return &Selection{
		Target:           s.simulator,
		UsedRealHardware: false,
		Reason:           reason,
	}
}

func (s *Selector) recordFailure() {
	if s.breaker != nil {
		s.breaker.RecordFailure()
	}
}

// fallbackReason names a fallback cause for metrics.
func fallbackReason(err error) string {
	var connErr *ConnectivityError
	var execErr *ExecutionError

	switch {
	case errors.Is(err, ErrRemoteDisabled):
		return "disabled"
	case errors.Is(err, ErrBreakerOpen):
		return "breaker_open"
	case errors.Is(err, ErrNoEligibleBackend):
		return "no_eligible_backend"
	case errors.As(err, &connErr):
		return "connectivity"
	case errors.As(err, &execErr):
		return "execution"
	default:
		return "other"
	}
}
