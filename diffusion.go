package qcircuit

import (
	"fmt"
	"math"
)

// maxRegisterWidth bounds index arithmetic on basis states.
const maxRegisterWidth = 62

/*
BuildDiffusion returns the inversion-about-the-mean operator over n qubits:
H and X on every qubit, a phase flip of |1...1⟩, then X and H on every qubit
again.
*/
func BuildDiffusion(n int) (*Circuit, error) {
	if n < 1 || n > maxRegisterWidth {
		return nil, fmt.Errorf("diffusion over %d qubits: register width must be in [1, %d]", n, maxRegisterWidth)
	}

	all := register(n)
	diffusion := NewCircuit("diffusion", n)

	diffusion.H(all...).X(all...)
	phaseFlipAllOnes(diffusion)
	diffusion.X(all...).H(all...)

	return diffusion, nil
}

/*
OptimalIterations is floor(π/4 · sqrt(2^n)), the number of amplification rounds
that maximises the probability of a single marked item among 2^n. It is never
negative.
*/
func OptimalIterations(n int) int {
	if n < 0 {
		return 0
	}
	return int(math.Floor(math.Pi / 4 * math.Sqrt(math.Pow(2, float64(n)))))
}
