package qcircuit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

// TaskType selects the routine a task descriptor runs.
type TaskType string

const (
	TaskGrover        TaskType = "grover"
	TaskKeyGeneration TaskType = "key_generation"
	TaskQAOA          TaskType = "qaoa"
)

// missingType names the absent type field in the unknown-type error.
const missingType = "None"

// Item is one database entry; any JSON value.
type Item = any

/*
Task is the immutable descriptor of one invocation. Only the fields of the
selected routine are read.
*/
type Task struct {
	Type        TaskType          `json:"type"`
	Database    []Item            `json:"database,omitempty"`
	SearchItem  Item              `json:"searchItem,omitempty"`
	KeyLength   *int              `json:"keyLength,omitempty"`
	Resources   []float64         `json:"resources,omitempty"`
	Constraints []json.RawMessage `json:"constraints,omitempty"`
}

// ParseTask decodes a JSON task descriptor.
func ParseTask(data []byte) (*Task, error) {
	task := &Task{}
	if err := json.Unmarshal(data, task); err != nil {
		return nil, err
	}
	return task, nil
}

// SearchResult is the answer of a search.
type SearchResult struct {
	Result           Item     `json:"result"`
	Found            bool     `json:"found"`
	Confidence       *float64 `json:"confidence,omitempty"`
	UsedRealHardware *bool    `json:"usedRealHardware,omitempty"`
}

// KeyResult is a generated random key.
type KeyResult struct {
	Key              string `json:"key"`
	Length           int    `json:"length"`
	UsedRealHardware bool   `json:"usedRealHardware"`
}

// AllocationResult is a sampled resource allocation.
type AllocationResult struct {
	Allocation       []int   `json:"allocation"`
	Energy           float64 `json:"energy"`
	UsedRealHardware bool    `json:"usedRealHardware"`
}

// ErrorResult is a business-level failure reported inside a normal result.
type ErrorResult struct {
	Error string `json:"error"`
}

/*
Runner executes task descriptors. Every routine goes through the same
Selector and Dispatcher, so remote fallback and the single simulator retry
behave identically for search, key generation and allocation.
*/
type Runner struct {
	cfg        *Config
	provider   Provider
	simulator  Backend
	sampler    Sampler
	breaker    *CircuitBreaker
	selector   *Selector
	dispatcher *Dispatcher
	metrics    *Metrics
	logger     *log.Logger
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithProvider enables remote execution through provider.
func WithProvider(provider Provider) RunnerOption {
	return func(r *Runner) {
		r.provider = provider
	}
}

// WithSimulator replaces the local execution target.
func WithSimulator(simulator Backend) RunnerOption {
	return func(r *Runner) {
		r.simulator = simulator
	}
}

// WithSampler replaces the draw source of the allocation heuristic.
func WithSampler(sampler Sampler) RunnerOption {
	return func(r *Runner) {
		r.sampler = sampler
	}
}

// WithLogger sets the logger used by the runner and its components.
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

/*
NewRunner wires a Runner from configuration. Without WithProvider the runner
only uses the local simulator.
*/
func NewRunner(cfg *Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:     cfg,
		metrics: NewMetrics(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = NewLogger(cfg.Log.Level)
	}

	r.breaker = NewCircuitBreaker(
		cfg.Breaker.MaxFailures, cfg.Breaker.ResetTimeout, cfg.Breaker.HalfOpenMax, r.logger,
	)

	if r.simulator == nil || r.sampler == nil {
		sim := NewSimulator(cfg.Simulator.MaxQubits, cfg.Simulator.Seed)
		if r.simulator == nil {
			r.simulator = sim
		}
		if r.sampler == nil {
			r.sampler = sim
		}
	}

	errnie.Info("NewRunner - remote %t, simulator %s", r.provider != nil, r.simulator.Name())

	r.selector = NewSelector(r.provider, r.simulator, r.breaker, r.logger)
	r.dispatcher = NewDispatcher(r.breaker, r.metrics, r.logger)

	return r
}

// Metrics returns the runner's counters.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

/*
Run executes one task and returns its JSON-serialisable result. An unknown
task type is a result, not an error. Errors are reserved for invalid fields
and simulator failures.
*/
func (r *Runner) Run(ctx context.Context, task *Task) (any, error) {
	r.metrics.recordTask()
	defer func() {
		r.logger.Debug("run complete", "type", task.Type, "metrics", r.metrics.ExportMetrics())
	}()

	switch task.Type {
	case TaskGrover:
		return r.Search(ctx, task.Database, task.SearchItem)
	case TaskKeyGeneration:
		length := r.cfg.Key.DefaultLength
		if task.KeyLength != nil {
			length = *task.KeyLength
		}
		return r.GenerateKey(ctx, length)
	case TaskQAOA:
		return r.OptimizeAllocation(ctx, task.Resources, task.Constraints)
	case "":
		return &ErrorResult{Error: "Unknown circuit type: " + missingType}, nil
	default:
		return &ErrorResult{Error: fmt.Sprintf("Unknown circuit type: %s", task.Type)}, nil
	}
}

/*
Search looks for item in database with amplitude amplification. An item
missing from the database is reported as not found without building a
circuit. A one-item database has no register to search (zero qubits), so a
present item is returned directly with full confidence.
*/
func (r *Runner) Search(ctx context.Context, database []Item, item Item) (*SearchResult, error) {
	target := indexOf(database, item)
	if target < 0 {
		r.logger.Info("search item not in database", "size", len(database))
		return &SearchResult{Result: nil, Found: false}, nil
	}

	if len(database) == 1 {
		r.logger.Debug("single item database, no circuit built")
		confidence, used := 1.0, false
		return &SearchResult{
			Result:           database[0],
			Found:            true,
			Confidence:       &confidence,
			UsedRealHardware: &used,
		}, nil
	}

	n := SearchWidth(len(database))
	circuit, err := AssembleSearch(n, target)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("assembled search circuit",
		"qubits", n, "iterations", OptimalIterations(n), "gates", len(circuit.Gates))

	shots := r.cfg.Shots.Search
	exec, err := r.execute(ctx, circuit, shots)
	if err != nil {
		return nil, err
	}

	result, err := ReduceSearch(exec.Histogram, target, database, shots)
	if err != nil {
		return nil, err
	}

	if result.Confidence != nil {
		used := exec.UsedRealHardware
		result.UsedRealHardware = &used
	}

	return result, nil
}

// GenerateKey draws a random bitstring of length bits from one measurement.
func (r *Runner) GenerateKey(ctx context.Context, length int) (*KeyResult, error) {
	if length < 1 {
		return nil, &TaskError{Field: "keyLength", Reason: fmt.Sprintf("must be positive, got %d", length)}
	}

	circuit, err := AssembleKeyGeneration(length)
	if err != nil {
		return nil, err
	}

	exec, err := r.execute(ctx, circuit, r.cfg.Shots.Key)
	if err != nil {
		return nil, err
	}

	result, err := ReduceKey(exec.Histogram)
	if err != nil {
		return nil, err
	}

	result.UsedRealHardware = exec.UsedRealHardware
	return result, nil
}

/*
OptimizeAllocation selects a target for reporting like the other routines,
then samples the allocation classically (see Allocate).
*/
func (r *Runner) OptimizeAllocation(
	ctx context.Context, resources []float64, constraints []json.RawMessage,
) (*AllocationResult, error) {
	sel := r.selector.Select(ctx, len(resources))
	r.metrics.recordSelection(sel)

	r.logger.Debug("allocating resources classically",
		"resources", len(resources), "constraints", len(constraints),
		"shots", r.cfg.Shots.Allocation, "target", sel.Target.Name())

	allocation, energy := Allocate(resources, r.sampler)

	return &AllocationResult{
		Allocation:       allocation,
		Energy:           energy,
		UsedRealHardware: sel.UsedRealHardware,
	}, nil
}

func (r *Runner) execute(ctx context.Context, circuit *Circuit, shots int) (*Execution, error) {
	sel := r.selector.Select(ctx, circuit.NumQubits)
	r.metrics.recordSelection(sel)
	return r.dispatcher.Execute(ctx, circuit, sel, shots)
}

func indexOf(database []Item, item Item) int {
	for i, candidate := range database {
		if reflect.DeepEqual(candidate, item) {
			return i
		}
	}
	return -1
}

// NewLogger returns a stderr logger at the named level, info when unknown.
func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "qcircuit",
		ReportTimestamp: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
