package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"
)

/*
QuantumState is a dense state vector over 2^n computational basis states.
Qubit 0 is the most significant bit of a basis index, so the integer value of
a measured bitstring is the index of its amplitude.
*/
type QuantumState struct {
	Vector    []complex128
	NumQubits int
}

// NewQuantumState returns |0...0⟩ over n qubits.
func NewQuantumState(n int) *QuantumState {
	return BasisState(n, 0)
}

// BasisState returns the computational basis state |index⟩ over n qubits.
func BasisState(n, index int) *QuantumState {
	vector := make([]complex128, 1<<n)
	vector[index] = 1
	return &QuantumState{Vector: vector, NumQubits: n}
}

// Clone returns an independent copy of the state.
func (qs *QuantumState) Clone() *QuantumState {
	vector := make([]complex128, len(qs.Vector))
	copy(vector, qs.Vector)
	return &QuantumState{Vector: vector, NumQubits: qs.NumQubits}
}

/*
Run applies every unitary gate of the circuit in order. Measurements are
allowed only at the end of the circuit; sampling them is left to Sample.
*/
func (qs *QuantumState) Run(circuit *Circuit) error {
	if circuit.NumQubits != qs.NumQubits {
		return fmt.Errorf("run %q: circuit width %d does not match state width %d",
			circuit.Name, circuit.NumQubits, qs.NumQubits)
	}

	measuring := false
	for i, g := range circuit.Gates {
		if g.Kind == GateMeasure {
			measuring = true
			continue
		}
		if measuring {
			return fmt.Errorf("run %q gate %d: gates after measurement are not supported", circuit.Name, i)
		}
		if err := qs.Apply(g); err != nil {
			return err
		}
	}

	return nil
}

// Apply applies a single unitary gate to the state.
func (qs *QuantumState) Apply(g Gate) error {
	bit := qs.mask(g.Target)

	switch g.Kind {
	case GateH:
		h := complex(1/math.Sqrt2, 0)
		for i := range qs.Vector {
			if i&bit == 0 {
				j := i | bit
				a, b := qs.Vector[i], qs.Vector[j]
				qs.Vector[i] = h * (a + b)
				qs.Vector[j] = h * (a - b)
			}
		}
	case GateX:
		for i := range qs.Vector {
			if i&bit == 0 {
				j := i | bit
				qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
			}
		}
	case GateZ:
		for i := range qs.Vector {
			if i&bit != 0 {
				qs.Vector[i] = -qs.Vector[i]
			}
		}
	case GateMCX:
		var controls int
		for _, c := range g.Controls {
			controls |= qs.mask(c)
		}
		for i := range qs.Vector {
			if i&bit == 0 && i&controls == controls {
				j := i | bit
				qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
			}
		}
	default:
		return fmt.Errorf("state vector cannot apply gate %q", g.Kind)
	}

	return nil
}

// Probabilities returns |amplitude|² for every basis state.
func (qs *QuantumState) Probabilities() []float64 {
	probs := make([]float64, len(qs.Vector))
	for i, amplitude := range qs.Vector {
		p := cmplx.Abs(amplitude)
		probs[i] = p * p
	}
	return probs
}

/*
Sample draws shots independent measurements of the whole register from the
state's probability distribution without collapsing it.
*/
func (qs *QuantumState) Sample(shots int, rng *rand.Rand) Histogram {
	probs := qs.Probabilities()

	cumulative := make([]float64, len(probs))
	var total float64
	for i, p := range probs {
		total += p
		cumulative[i] = total
	}

	histogram := make(Histogram)
	for shot := 0; shot < shots; shot++ {
		r := rng.Float64() * total
		idx := sort.Search(len(cumulative), func(i int) bool {
			return cumulative[i] > r
		})
		if idx == len(cumulative) {
			idx = lastNonZero(probs)
		}
		histogram[TargetBits(qs.NumQubits, idx)]++
	}

	return histogram
}

func (qs *QuantumState) mask(qubit int) int {
	return 1 << (qs.NumQubits - 1 - qubit)
}

func lastNonZero(probs []float64) int {
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return 0
}
