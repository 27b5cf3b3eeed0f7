package qcircuit

import (
	"sync"
	"time"
)

/*
Metrics counts what a Runner did: how targets were chosen, why it fell back
to the simulator, and how long executions took.
*/
type Metrics struct {
	mu sync.RWMutex

	Tasks            int64
	Selections       int64
	RemoteSelections int64
	Fallbacks        map[string]int64 // keyed by fallback reason
	Executions       int64
	RemoteFailures   int64
	SimulatorRetries int64

	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	LastBackend          string
}

func NewMetrics() *Metrics {
	return &Metrics{
		Fallbacks: make(map[string]int64),
	}
}

func (m *Metrics) recordTask() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks++
}

func (m *Metrics) recordSelection(sel *Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Selections++
	if sel.UsedRealHardware {
		m.RemoteSelections++
	}
	if sel.Reason != nil {
		m.Fallbacks[fallbackReason(sel.Reason)]++
	}
}

func (m *Metrics) recordExecution(job *Job) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Executions++
	m.LastBackend = job.Backend
	m.TotalExecutionTime += job.Duration
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.Executions)
}

// recordRemoteFailure counts a failed remote run and the simulator retry it triggers.
func (m *Metrics) recordRemoteFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoteFailures++
	m.SimulatorRetries++
}

// ExportMetrics flattens the counters for logging.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fallbacks := make(map[string]int64, len(m.Fallbacks))
	for k, v := range m.Fallbacks {
		fallbacks[k] = v
	}

	return map[string]interface{}{
		"tasks":             m.Tasks,
		"selections":        m.Selections,
		"remote_selections": m.RemoteSelections,
		"fallbacks":         fallbacks,
		"executions":        m.Executions,
		"remote_failures":   m.RemoteFailures,
		"simulator_retries": m.SimulatorRetries,
		"avg_execution_ms":  m.AverageExecutionTime.Milliseconds(),
		"last_backend":      m.LastBackend,
	}
}
