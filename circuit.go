package qcircuit

import (
	"errors"
	"fmt"
)

/*
GateKind names one of the operations a Circuit can hold. The set is kept to
what the search, key generation and allocation routines need; every unitary
kind in it is its own inverse.
*/
type GateKind string

const (
	GateH       GateKind = "h"       // Hadamard
	GateX       GateKind = "x"       // Pauli-X (bit flip)
	GateZ       GateKind = "z"       // Pauli-Z (phase flip)
	GateMCX     GateKind = "mcx"     // X on Target when every control is |1⟩
	GateMeasure GateKind = "measure" // computational basis measurement
)

// Gate is a single operation on the register.
type Gate struct {
	Kind     GateKind `json:"name"`
	Target   int      `json:"target"`
	Controls []int    `json:"controls,omitempty"`
}

/*
Circuit is an ordered sequence of gates over a fixed register of NumQubits
qubits. It is built once, executed once and then discarded.
*/
type Circuit struct {
	Name      string `json:"name"`
	NumQubits int    `json:"numQubits"`
	Gates     []Gate `json:"gates"`
}

// NewCircuit returns an empty circuit over n qubits.
func NewCircuit(name string, n int) *Circuit {
	return &Circuit{
		Name:      name,
		NumQubits: n,
		Gates:     make([]Gate, 0),
	}
}

// H appends a Hadamard on each of the given qubits.
func (c *Circuit) H(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Gates = append(c.Gates, Gate{Kind: GateH, Target: q})
	}
	return c
}

// X appends a bit flip on each of the given qubits.
func (c *Circuit) X(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Gates = append(c.Gates, Gate{Kind: GateX, Target: q})
	}
	return c
}

// Z appends a phase flip on each of the given qubits.
func (c *Circuit) Z(qubits ...int) *Circuit {
	for _, q := range qubits {
		c.Gates = append(c.Gates, Gate{Kind: GateZ, Target: q})
	}
	return c
}

/*
MCX appends a multi-controlled NOT. With no controls it degenerates to a
plain X on the target.
*/
func (c *Circuit) MCX(controls []int, target int) *Circuit {
	ctrl := make([]int, len(controls))
	copy(ctrl, controls)
	c.Gates = append(c.Gates, Gate{Kind: GateMCX, Target: target, Controls: ctrl})
	return c
}

// MeasureAll appends a measurement of every qubit in the register.
func (c *Circuit) MeasureAll() *Circuit {
	for q := 0; q < c.NumQubits; q++ {
		c.Gates = append(c.Gates, Gate{Kind: GateMeasure, Target: q})
	}
	return c
}

// Append copies the gates of other onto the end of c.
func (c *Circuit) Append(other *Circuit) error {
	if other.NumQubits != c.NumQubits {
		return fmt.Errorf(
			"append %q: register width %d does not match %d",
			other.Name, other.NumQubits, c.NumQubits,
		)
	}

	for _, g := range other.Gates {
		c.Gates = append(c.Gates, g.clone())
	}

	return nil
}

/*
Inverse returns the adjoint of a measurement-free circuit. All supported
unitary gates are self-inverse, so the adjoint is the gate list reversed.
*/
func (c *Circuit) Inverse() (*Circuit, error) {
	inv := NewCircuit(c.Name+"_dg", c.NumQubits)

	for i := len(c.Gates) - 1; i >= 0; i-- {
		if c.Gates[i].Kind == GateMeasure {
			return nil, errors.New("cannot invert a circuit containing measurements")
		}
		inv.Gates = append(inv.Gates, c.Gates[i].clone())
	}

	return inv, nil
}

// Entangling reports whether any gate acts on more than one qubit.
func (c *Circuit) Entangling() bool {
	for _, g := range c.Gates {
		if g.Kind == GateMCX && len(g.Controls) > 0 {
			return true
		}
	}
	return false
}

// Measured reports whether the circuit measures at least one qubit.
func (c *Circuit) Measured() bool {
	for _, g := range c.Gates {
		if g.Kind == GateMeasure {
			return true
		}
	}
	return false
}

// Count returns how many gates of the given kind the circuit holds.
func (c *Circuit) Count(kind GateKind) int {
	var n int
	for _, g := range c.Gates {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

/*
Validate checks every gate addresses a qubit inside the register and that no
controlled gate uses its target as a control.
*/
func (c *Circuit) Validate() error {
	if c.NumQubits < 1 {
		return fmt.Errorf("circuit %q: register must hold at least one qubit", c.Name)
	}

	for i, g := range c.Gates {
		if g.Target < 0 || g.Target >= c.NumQubits {
			return fmt.Errorf("circuit %q gate %d: target %d outside register", c.Name, i, g.Target)
		}

		seen := make(map[int]bool, len(g.Controls))
		for _, ctrl := range g.Controls {
			if ctrl < 0 || ctrl >= c.NumQubits {
				return fmt.Errorf("circuit %q gate %d: control %d outside register", c.Name, i, ctrl)
			}
			if ctrl == g.Target {
				return fmt.Errorf("circuit %q gate %d: qubit %d is both control and target", c.Name, i, ctrl)
			}
			if seen[ctrl] {
				return fmt.Errorf("circuit %q gate %d: duplicate control %d", c.Name, i, ctrl)
			}
			seen[ctrl] = true
		}

		switch g.Kind {
		case GateH, GateX, GateZ, GateMCX, GateMeasure:
		default:
			return fmt.Errorf("circuit %q gate %d: unknown gate %q", c.Name, i, g.Kind)
		}
	}

	return nil
}

func (g Gate) clone() Gate {
	if g.Controls == nil {
		return g
	}
	ctrl := make([]int, len(g.Controls))
	copy(ctrl, g.Controls)
	g.Controls = ctrl
	return g
}

// register lists the qubit indices 0..n-1.
func register(n int) []int {
	qubits := make([]int, n)
	for i := range qubits {
		qubits[i] = i
	}
	return qubits
}
