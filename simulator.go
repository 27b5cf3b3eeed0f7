package qcircuit

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/theapemachine/errnie"
)

/*
Simulator is the local execution target. It runs circuits with a dense state
vector, or qubit by qubit when the circuit never entangles, and samples the
requested number of shots from a seeded generator. Two simulators created
with the same non-zero seed produce the same histograms for the same circuits.
*/
type Simulator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	maxQubits int
}

/*
NewSimulator creates a simulator.

Parameters:
  - maxQubits: Widest circuit the dense state vector path accepts
  - seed: Generator seed; zero draws a seed from crypto/rand

Returns:
  - *Simulator: A ready simulator
*/
func NewSimulator(maxQubits int, seed uint64) *Simulator {
	if seed == 0 {
		seed = randomSeed()
	}

	errnie.Info("NewSimulator - maxQubits %d", maxQubits)

	return &Simulator{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxQubits: maxQubits,
	}
}

func (sim *Simulator) Name() string {
	return "local_simulator"
}

/*
Submit runs the circuit and samples shots measurements. Errors from here are
not recovered by the dispatcher.
*/
func (sim *Simulator) Submit(ctx context.Context, circuit *Circuit, shots int) (Histogram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if shots < 1 {
		return nil, fmt.Errorf("simulate %q: shot count must be positive, got %d", circuit.Name, shots)
	}

	if err := circuit.Validate(); err != nil {
		return nil, err
	}

	if !circuit.Measured() {
		return nil, fmt.Errorf("simulate %q: circuit has no measurements", circuit.Name)
	}

	sim.mu.Lock()
	defer sim.mu.Unlock()

	if !circuit.Entangling() {
		state := NewProductState(circuit.NumQubits)
		if err := state.Run(circuit); err != nil {
			return nil, err
		}
		return state.Sample(shots, sim.rng), nil
	}

	if circuit.NumQubits > sim.maxQubits {
		return nil, fmt.Errorf("%w: %q needs %d qubits, limit is %d",
			ErrCircuitTooLarge, circuit.Name, circuit.NumQubits, sim.maxQubits)
	}

	state := NewQuantumState(circuit.NumQubits)
	if err := state.Run(circuit); err != nil {
		return nil, err
	}

	return state.Sample(shots, sim.rng), nil
}

// Float64 draws from the simulator's generator for classical sampling.
func (sim *Simulator) Float64() float64 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.rng.Float64()
}

func randomSeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 1
	}
	return binary.LittleEndian.Uint64(buf[:]) | 1
}
