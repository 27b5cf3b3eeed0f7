package qcircuit

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func runOn(c *Circuit, state *QuantumState) *QuantumState {
	out := state.Clone()
	So(out.Run(c), ShouldBeNil)
	return out
}

func TestBuildOracle(t *testing.T) {
	Convey("Given oracles over one to four qubits", t, func() {
		Convey("Each basis state should keep its amplitude except the target, which flips sign", func() {
			for n := 1; n <= 4; n++ {
				for target := 0; target < 1<<n; target++ {
					oracle, err := BuildOracle(n, target)
					So(err, ShouldBeNil)

					for basis := 0; basis < 1<<n; basis++ {
						out := runOn(oracle, BasisState(n, basis))

						want := complex(1, 0)
						if basis == target {
							want = -1
						}
						if cmplx.Abs(out.Vector[basis]-want) > tolerance {
							t.Log(spew.Sdump(oracle))
						}
						So(cmplx.Abs(out.Vector[basis]-want), ShouldBeLessThan, tolerance)
					}
				}
			}
		})

		Convey("Applying the oracle followed by its inverse should be the identity", func() {
			for n := 1; n <= 4; n++ {
				for target := 0; target < 1<<n; target++ {
					oracle, _ := BuildOracle(n, target)
					inv, err := oracle.Inverse()
					So(err, ShouldBeNil)

					uniform := NewQuantumState(n)
					for q := 0; q < n; q++ {
						So(uniform.Apply(Gate{Kind: GateH, Target: q}), ShouldBeNil)
					}

					out := runOn(inv, runOn(oracle, uniform))
					for i := range out.Vector {
						So(cmplx.Abs(out.Vector[i]-uniform.Vector[i]), ShouldBeLessThan, tolerance)
					}
				}
			}
		})
	})

	Convey("Given the single qubit case", t, func() {
		oracle, err := BuildOracle(1, 1)

		Convey("It should need no controls", func() {
			So(err, ShouldBeNil)
			So(oracle.Entangling(), ShouldBeFalse)
			So(oracle.Count(GateX), ShouldEqual, 0)
		})
	})

	Convey("Given a target that does not fit the register", t, func() {
		_, errHigh := BuildOracle(2, 4)
		_, errLow := BuildOracle(2, -1)

		Convey("It should report a precondition failure", func() {
			So(errors.Is(errHigh, ErrTargetOutOfRange), ShouldBeTrue)
			So(errors.Is(errLow, ErrTargetOutOfRange), ShouldBeTrue)
		})
	})

	Convey("Given target 5 over three qubits", t, func() {
		oracle, _ := BuildOracle(3, 5)

		Convey("It should flip only the zero bit of 101, before and after the phase flip", func() {
			So(TargetBits(3, 5), ShouldEqual, "101")
			So(oracle.Count(GateX), ShouldEqual, 2)
			So(oracle.Gates[0], ShouldResemble, Gate{Kind: GateX, Target: 1})
			So(oracle.Gates[len(oracle.Gates)-1], ShouldResemble, Gate{Kind: GateX, Target: 1})
		})
	})
}
