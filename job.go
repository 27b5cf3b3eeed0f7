package qcircuit

import (
	"time"

	"github.com/google/uuid"
)

// Job records one submission of a circuit to a backend
type Job struct {
	ID        string
	Circuit   string
	Backend   string
	Shots     int
	Attempt   int
	LastError error
	StartTime time.Time
	Duration  time.Duration
}

func newJob(circuit *Circuit, backend Backend, shots, attempt int) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Circuit:   circuit.Name,
		Backend:   backend.Name(),
		Shots:     shots,
		Attempt:   attempt,
		StartTime: time.Now(),
	}
}

func (j *Job) finish(err error) {
	j.LastError = err
	j.Duration = time.Since(j.StartTime)
}
