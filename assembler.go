package qcircuit

import (
	"fmt"
	"math"
)

/*
Assemble composes a runnable amplitude amplification circuit: a Hadamard on
every qubit, then iterations rounds of oracle followed by diffusion, then a
measurement of the whole register.

Parameters:
  - n: Register width shared by oracle and diffusion
  - oracle: Marking sub-circuit from BuildOracle
  - diffusion: Amplification sub-circuit from BuildDiffusion
  - iterations: Number of oracle+diffusion rounds, usually OptimalIterations(n)

Returns:
  - *Circuit: The measured circuit
  - error: When the sub-circuits do not share the register width
*/
func Assemble(n int, oracle, diffusion *Circuit, iterations int) (*Circuit, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("assemble: negative iteration count %d", iterations)
	}

	circuit := NewCircuit("grover", n)
	circuit.H(register(n)...)

	for i := 0; i < iterations; i++ {
		if err := circuit.Append(oracle); err != nil {
			return nil, err
		}
		if err := circuit.Append(diffusion); err != nil {
			return nil, err
		}
	}

	circuit.MeasureAll()

	return circuit, circuit.Validate()
}

// AssembleSearch builds the full search circuit for targetIndex over n qubits.
func AssembleSearch(n, targetIndex int) (*Circuit, error) {
	oracle, err := BuildOracle(n, targetIndex)
	if err != nil {
		return nil, err
	}

	diffusion, err := BuildDiffusion(n)
	if err != nil {
		return nil, err
	}

	return Assemble(n, oracle, diffusion, OptimalIterations(n))
}

/*
AssembleKeyGeneration puts n qubits into uniform superposition and measures
them straight away: n independent fair coin flips.
*/
func AssembleKeyGeneration(n int) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("key generation needs at least one qubit, got %d", n)
	}

	circuit := NewCircuit("key_generation", n)
	circuit.H(register(n)...).MeasureAll()

	return circuit, nil
}

/*
SearchWidth is the register width needed to index a database of the given
size, ceil(log2(size)), never below one qubit.
*/
func SearchWidth(size int) int {
	if size <= 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(size))))
}
