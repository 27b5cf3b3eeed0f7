package qcircuit

import (
	"context"
	"fmt"
)

/*
Backend is the single capability every execution target offers: run a
circuit for a number of shots and return the measurement histogram. The
Backend Selector picks one and the Dispatcher uses it without knowing whether
it is remote hardware or the local simulator.
*/
type Backend interface {
	Name() string
	Submit(ctx context.Context, circuit *Circuit, shots int) (Histogram, error)
}

/*
Candidate describes one backend advertised by a remote provider.
*/
type Candidate struct {
	Name          string `json:"name"`
	QubitCapacity int    `json:"qubitCapacity"`
	IsSimulator   bool   `json:"simulator"`
	Operational   bool   `json:"operational"`
	PendingJobs   int    `json:"pendingJobs"`
}

/*
Eligible reports whether the candidate may run a circuit of the given width
on real hardware.
*/
func (c Candidate) Eligible(requiredQubits int) bool {
	return c.QubitCapacity >= requiredQubits && !c.IsSimulator && c.Operational
}

/*
Provider is the remote execution service collaborator. Connect establishes a
session, ListBackends enumerates the candidates accepted by filter, and Submit
blocks until the job on the named candidate returns counts or fails.
*/
type Provider interface {
	Name() string
	Connect(ctx context.Context) error
	ListBackends(ctx context.Context, filter func(Candidate) bool) ([]Candidate, error)
	Submit(ctx context.Context, circuit *Circuit, candidate Candidate, shots int) (Histogram, error)
}

// RemoteBackend binds a provider to the candidate chosen for this task.
type RemoteBackend struct {
	provider  Provider
	candidate Candidate
}

func NewRemoteBackend(provider Provider, candidate Candidate) *RemoteBackend {
	return &RemoteBackend{
		provider:  provider,
		candidate: candidate,
	}
}

func (rb *RemoteBackend) Name() string {
	return fmt.Sprintf("%s/%s", rb.provider.Name(), rb.candidate.Name)
}

// Candidate returns the provider backend this target submits to.
func (rb *RemoteBackend) Candidate() Candidate {
	return rb.candidate
}

func (rb *RemoteBackend) Submit(ctx context.Context, circuit *Circuit, shots int) (Histogram, error) {
	histogram, err := rb.provider.Submit(ctx, circuit, rb.candidate, shots)
	if err != nil {
		return nil, &ExecutionError{Backend: rb.Name(), Err: err}
	}
	return histogram, nil
}
