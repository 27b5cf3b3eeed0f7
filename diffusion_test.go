package qcircuit

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOptimalIterations(t *testing.T) {
	Convey("Given register widths one to ten", t, func() {
		Convey("It should match floor(pi/4 * sqrt(2^n))", func() {
			want := []int{1, 1, 2, 3, 4, 6, 8, 12, 17, 25}
			for n := 1; n <= 10; n++ {
				So(OptimalIterations(n), ShouldEqual, want[n-1])
				So(OptimalIterations(n), ShouldEqual, int(math.Floor(math.Pi/4*math.Sqrt(math.Pow(2, float64(n))))))
			}
		})

		Convey("It should never decrease", func() {
			for n := 1; n < 20; n++ {
				So(OptimalIterations(n+1), ShouldBeGreaterThanOrEqualTo, OptimalIterations(n))
			}
		})

		Convey("It should never be negative", func() {
			So(OptimalIterations(0), ShouldEqual, 0)
			So(OptimalIterations(-3), ShouldEqual, 0)
		})
	})
}

func TestBuildDiffusion(t *testing.T) {
	Convey("Given a diffusion operator over three qubits", t, func() {
		diffusion, err := BuildDiffusion(3)
		So(err, ShouldBeNil)

		Convey("It should wrap the phase flip in H and X layers", func() {
			So(diffusion.Count(GateH), ShouldEqual, 3*2+2)
			So(diffusion.Count(GateX), ShouldEqual, 3*2)
			So(diffusion.Count(GateMCX), ShouldEqual, 1)
		})

		Convey("It should leave the uniform superposition's probabilities unchanged", func() {
			uniform := NewQuantumState(3)
			for q := 0; q < 3; q++ {
				So(uniform.Apply(Gate{Kind: GateH, Target: q}), ShouldBeNil)
			}

			out := runOn(diffusion, uniform)
			for _, p := range out.Probabilities() {
				So(p, ShouldAlmostEqual, 1.0/8, tolerance)
			}
		})
	})

	Convey("Given an empty register", t, func() {
		_, err := BuildDiffusion(0)

		Convey("It should refuse to build", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given a four item search for index 2", t, func() {
		circuit, err := AssembleSearch(2, 2)
		So(err, ShouldBeNil)

		Convey("It should start with a Hadamard on every qubit and end measuring them", func() {
			So(circuit.Gates[0].Kind, ShouldEqual, GateH)
			So(circuit.Gates[1].Kind, ShouldEqual, GateH)
			So(circuit.Count(GateMeasure), ShouldEqual, 2)
			So(circuit.Gates[len(circuit.Gates)-1].Kind, ShouldEqual, GateMeasure)
		})

		Convey("One round should concentrate all probability on the target", func() {
			state := NewQuantumState(2)
			So(state.Run(circuit), ShouldBeNil)
			So(state.Probabilities()[2], ShouldAlmostEqual, 1.0, tolerance)
		})
	})

	Convey("Given an eight item search for index 5", t, func() {
		circuit, _ := AssembleSearch(3, 5)
		state := NewQuantumState(3)
		So(state.Run(circuit), ShouldBeNil)

		Convey("The target should dominate after two rounds", func() {
			probs := state.Probabilities()
			So(probs[5], ShouldBeGreaterThan, 0.9)
		})
	})

	Convey("Given mismatched sub-circuits", t, func() {
		oracle, _ := BuildOracle(2, 1)
		diffusion, _ := BuildDiffusion(3)
		_, err := Assemble(2, oracle, diffusion, 1)

		Convey("It should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a key generation circuit", t, func() {
		circuit, err := AssembleKeyGeneration(8)

		Convey("It should be superposition followed by measurement only", func() {
			So(err, ShouldBeNil)
			So(circuit.Count(GateH), ShouldEqual, 8)
			So(circuit.Count(GateMeasure), ShouldEqual, 8)
			So(len(circuit.Gates), ShouldEqual, 16)
			So(circuit.Entangling(), ShouldBeFalse)
		})
	})

	Convey("Given database sizes", t, func() {
		Convey("SearchWidth should be ceil(log2(size)) with a floor of one", func() {
			So(SearchWidth(0), ShouldEqual, 1)
			So(SearchWidth(1), ShouldEqual, 1)
			So(SearchWidth(2), ShouldEqual, 1)
			So(SearchWidth(3), ShouldEqual, 2)
			So(SearchWidth(4), ShouldEqual, 2)
			So(SearchWidth(5), ShouldEqual, 3)
			So(SearchWidth(1024), ShouldEqual, 10)
		})
	})
}
