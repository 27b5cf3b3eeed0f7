package qcircuit

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"
)

// Qubit is a single unentangled qubit α|0⟩ + β|1⟩.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha: alpha,
		beta:  beta,
	}
}

func (q *Qubit) ApplyHadamard() {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	newAlpha := (q.alpha + q.beta) / complex(math.Sqrt(2), 0)
	newBeta := (q.alpha - q.beta) / complex(math.Sqrt(2), 0)
	q.alpha = newAlpha
	q.beta = newBeta
}

func (q *Qubit) ApplyX() {
	q.alpha, q.beta = q.beta, q.alpha
}

func (q *Qubit) ApplyZ() {
	q.beta = -q.beta
}

// ProbabilityOne is the chance of reading |1⟩.
func (q *Qubit) ProbabilityOne() float64 {
	a := cmplx.Abs(q.alpha)
	b := cmplx.Abs(q.beta)
	return b * b / (a*a + b*b)
}

/*
ProductState simulates circuits without entangling gates one qubit at a time,
so registers far wider than a dense state vector allows (a 256-bit key) stay
cheap.
*/
type ProductState struct {
	Qubits []*Qubit
}

// NewProductState returns |0...0⟩ over n independent qubits.
func NewProductState(n int) *ProductState {
	qubits := make([]*Qubit, n)
	for i := range qubits {
		qubits[i] = NewQubit(1, 0)
	}
	return &ProductState{Qubits: qubits}
}

// Run applies the circuit's single-qubit gates, ignoring measurements.
func (ps *ProductState) Run(circuit *Circuit) error {
	if circuit.NumQubits != len(ps.Qubits) {
		return fmt.Errorf("run %q: circuit width %d does not match state width %d",
			circuit.Name, circuit.NumQubits, len(ps.Qubits))
	}

	for i, g := range circuit.Gates {
		q := ps.Qubits[g.Target]

		switch {
		case g.Kind == GateH:
			q.ApplyHadamard()
		case g.Kind == GateX, g.Kind == GateMCX && len(g.Controls) == 0:
			q.ApplyX()
		case g.Kind == GateZ:
			q.ApplyZ()
		case g.Kind == GateMeasure:
		default:
			return fmt.Errorf("run %q gate %d: %q is not a single-qubit gate", circuit.Name, i, g.Kind)
		}
	}

	return nil
}

// Sample measures every qubit independently for each of shots draws.
func (ps *ProductState) Sample(shots int, rng *rand.Rand) Histogram {
	probs := make([]float64, len(ps.Qubits))
	for i, q := range ps.Qubits {
		probs[i] = q.ProbabilityOne()
	}

	histogram := make(Histogram)
	var bits strings.Builder
	for shot := 0; shot < shots; shot++ {
		bits.Reset()
		for _, p := range probs {
			if rng.Float64() < p {
				bits.WriteByte('1')
			} else {
				bits.WriteByte('0')
			}
		}
		histogram[bits.String()]++
	}

	return histogram
}
