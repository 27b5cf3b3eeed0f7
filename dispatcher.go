package qcircuit

import (
	"context"

	"github.com/charmbracelet/log"
)

/*
Execution is what the dispatcher hands to the result reducer: the histogram,
the backend that produced it, and the jobs submitted along the way.
*/
type Execution struct {
	Histogram        Histogram
	Backend          string
	UsedRealHardware bool
	Jobs             []*Job
}

/*
Dispatcher submits an assembled circuit to the selected target. A failure on
a remote target is logged and the circuit is resubmitted once to the
simulator with the same shot count. Simulator failures are returned as is.
*/
type Dispatcher struct {
	breaker *CircuitBreaker
	metrics *Metrics
	logger  *log.Logger
}

func NewDispatcher(breaker *CircuitBreaker, metrics *Metrics, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

/*
Execute runs circuit on sel.Target for shots shots.

Parameters:
  - ctx: Bounds the blocking submissions
  - circuit: Measured circuit from the assembler
  - sel: Target chosen by the Selector; sel.Fallback is used for the retry
  - shots: Number of measurements to collect

Returns:
  - *Execution: The histogram and the backend that produced it
  - error: The simulator's error, or the remote error when no fallback exists
*/
func (d *Dispatcher) Execute(ctx context.Context, circuit *Circuit, sel *Selection, shots int) (*Execution, error) {
	exec := &Execution{}

	histogram, err := d.submit(ctx, exec, circuit, sel.Target, shots, 1)
	if err == nil {
		if sel.UsedRealHardware && d.breaker != nil {
			d.breaker.RecordSuccess()
		}
		exec.Histogram = histogram
		exec.Backend = sel.Target.Name()
		exec.UsedRealHardware = sel.UsedRealHardware
		return exec, nil
	}

	if sel.Fallback == nil {
		return nil, err
	}

	d.logger.Error("error using real hardware, retrying on simulator",
		"backend", sel.Target.Name(), "err", err)

	if d.breaker != nil {
		d.breaker.RecordFailure()
	}
	d.metrics.recordRemoteFailure()

	histogram, err = d.submit(ctx, exec, circuit, sel.Fallback, shots, 2)
	if err != nil {
		return nil, err
	}

	exec.Histogram = histogram
	exec.Backend = sel.Fallback.Name()
	exec.UsedRealHardware = false

	return exec, nil
}

func (d *Dispatcher) submit(
	ctx context.Context, exec *Execution, circuit *Circuit, target Backend, shots, attempt int,
) (Histogram, error) {
	job := newJob(circuit, target, shots, attempt)
	exec.Jobs = append(exec.Jobs, job)

	d.logger.Debug("submitting circuit",
		"job", job.ID, "circuit", circuit.Name, "backend", job.Backend,
		"qubits", circuit.NumQubits, "gates", len(circuit.Gates), "shots", shots)

	histogram, err := target.Submit(ctx, circuit, shots)
	job.finish(err)
	d.metrics.recordExecution(job)

	return histogram, err
}
