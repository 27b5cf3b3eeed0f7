package qcircuit

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// stubProvider is a scripted remote provider.
type stubProvider struct {
	mu         sync.Mutex
	connectErr error
	listErr    error
	listPanic  bool
	candidates []Candidate
	counts     Histogram
	submitErr  error
	submitted  []string
	connects   int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connects++
	return p.connectErr
}

func (p *stubProvider) ListBackends(ctx context.Context, filter func(Candidate) bool) ([]Candidate, error) {
	if p.listPanic {
		panic("provider exploded")
	}
	if p.listErr != nil {
		return nil, p.listErr
	}

	out := make([]Candidate, 0, len(p.candidates))
	for _, c := range p.candidates {
		if filter(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p *stubProvider) Submit(ctx context.Context, circuit *Circuit, candidate Candidate, shots int) (Histogram, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitted = append(p.submitted, candidate.Name)
	if p.submitErr != nil {
		return nil, p.submitErr
	}
	return p.counts, nil
}

// fixedBackend always returns the same histogram.
type fixedBackend struct {
	name   string
	counts Histogram
	err    error
	calls  int
	shots  []int
}

func (b *fixedBackend) Name() string { return b.name }

func (b *fixedBackend) Submit(ctx context.Context, circuit *Circuit, shots int) (Histogram, error) {
	b.calls++
	b.shots = append(b.shots, shots)
	if b.err != nil {
		return nil, b.err
	}
	return b.counts, nil
}

// fixedSampler replays draws in order, repeating the last one.
type fixedSampler struct {
	draws []float64
	next  int
}

func (s *fixedSampler) Float64() float64 {
	d := s.draws[s.next]
	if s.next < len(s.draws)-1 {
		s.next++
	}
	return d
}

var errBoom = errors.New("boom")
