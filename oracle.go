package qcircuit

import (
	"fmt"
	"strconv"
	"strings"
)

/*
BuildOracle returns the reversible sub-circuit that flips the phase of the
basis state whose n-bit representation, most significant bit on qubit 0,
equals targetIndex. Every other basis state is left unchanged.

The target pattern is first mapped onto |1...1⟩ with X gates on its zero bits,
the all-ones state is phase flipped with H·MCX·H on the last qubit, and the X
gates are undone.

Parameters:
  - n: Register width, at least 1
  - targetIndex: Marked basis state, 0 <= targetIndex < 2^n

Returns:
  - *Circuit: The marking sub-circuit, free of measurements
  - error: ErrTargetOutOfRange when targetIndex does not fit in n bits
*/
func BuildOracle(n, targetIndex int) (*Circuit, error) {
	if n < 1 || n > maxRegisterWidth {
		return nil, fmt.Errorf("oracle over %d qubits: register width must be in [1, %d]", n, maxRegisterWidth)
	}

	if targetIndex < 0 || targetIndex >= 1<<n {
		return nil, fmt.Errorf("%w: %d with %d qubits", ErrTargetOutOfRange, targetIndex, n)
	}

	bits := TargetBits(n, targetIndex)
	oracle := NewCircuit(fmt.Sprintf("oracle_%s", bits), n)

	zeros := make([]int, 0, n)
	for i, b := range bits {
		if b == '0' {
			zeros = append(zeros, i)
		}
	}

	oracle.X(zeros...)
	phaseFlipAllOnes(oracle)
	oracle.X(zeros...)

	return oracle, nil
}

// TargetBits renders index as an n-character binary string, zero padded.
func TargetBits(n, index int) string {
	bits := strconv.FormatInt(int64(index), 2)
	if len(bits) >= n {
		return bits
	}
	return strings.Repeat("0", n-len(bits)) + bits
}

// phaseFlipAllOnes appends a multi-controlled Z on the |1...1⟩ state.
func phaseFlipAllOnes(c *Circuit) {
	last := c.NumQubits - 1
	c.H(last)
	c.MCX(register(last), last)
	c.H(last)
}
