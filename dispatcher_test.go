package qcircuit

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	circuit, _ := AssembleSearch(2, 2)

	Convey("Given a remote target that succeeds", t, func() {
		provider := &stubProvider{counts: Histogram{"10": 1024}}
		sim := &fixedBackend{name: "sim", counts: Histogram{"00": 1024}}
		metrics := NewMetrics()
		dispatcher := NewDispatcher(NewCircuitBreaker(1, time.Minute, 1, quietLogger()), metrics, quietLogger())

		sel := &Selection{
			Target:           NewRemoteBackend(provider, Candidate{Name: "qpu"}),
			Fallback:         sim,
			UsedRealHardware: true,
		}
		exec, err := dispatcher.Execute(ctx, circuit, sel, 1024)

		Convey("It should return the remote histogram", func() {
			So(err, ShouldBeNil)
			So(exec.Histogram, ShouldResemble, Histogram{"10": 1024})
			So(exec.UsedRealHardware, ShouldBeTrue)
			So(exec.Backend, ShouldEqual, "stub/qpu")
			So(sim.calls, ShouldEqual, 0)
			So(len(exec.Jobs), ShouldEqual, 1)
			So(exec.Jobs[0].ID, ShouldNotBeEmpty)
			So(metrics.Executions, ShouldEqual, 1)
		})
	})

	Convey("Given a remote target that fails", t, func() {
		provider := &stubProvider{submitErr: errBoom}
		sim := &fixedBackend{name: "sim", counts: Histogram{"10": 1024}}
		breaker := NewCircuitBreaker(1, time.Minute, 1, quietLogger())
		metrics := NewMetrics()
		dispatcher := NewDispatcher(breaker, metrics, quietLogger())

		sel := &Selection{
			Target:           NewRemoteBackend(provider, Candidate{Name: "qpu"}),
			Fallback:         sim,
			UsedRealHardware: true,
		}
		exec, err := dispatcher.Execute(ctx, circuit, sel, 1024)

		Convey("It should retry once on the simulator with the same shots", func() {
			So(err, ShouldBeNil)
			So(sim.calls, ShouldEqual, 1)
			So(sim.shots, ShouldResemble, []int{1024})
			So(exec.Histogram, ShouldResemble, Histogram{"10": 1024})
			So(exec.UsedRealHardware, ShouldBeFalse)
			So(exec.Backend, ShouldEqual, "sim")
		})

		Convey("It should keep both jobs and the remote error", func() {
			So(len(exec.Jobs), ShouldEqual, 2)
			var execErr *ExecutionError
			So(errors.As(exec.Jobs[0].LastError, &execErr), ShouldBeTrue)
			So(exec.Jobs[1].Attempt, ShouldEqual, 2)
			So(exec.Jobs[1].LastError, ShouldBeNil)
		})

		Convey("It should count the failure", func() {
			So(breaker.State(), ShouldEqual, CircuitOpen)
			So(metrics.RemoteFailures, ShouldEqual, 1)
			So(metrics.SimulatorRetries, ShouldEqual, 1)
		})
	})

	Convey("Given a failing simulator after a failing remote", t, func() {
		provider := &stubProvider{submitErr: errBoom}
		simErr := errors.New("simulator broke")
		sim := &fixedBackend{name: "sim", err: simErr}
		dispatcher := NewDispatcher(nil, NewMetrics(), quietLogger())

		sel := &Selection{
			Target:           NewRemoteBackend(provider, Candidate{Name: "qpu"}),
			Fallback:         sim,
			UsedRealHardware: true,
		}
		_, err := dispatcher.Execute(ctx, circuit, sel, 1024)

		Convey("The simulator error should propagate after a single retry", func() {
			So(errors.Is(err, simErr), ShouldBeTrue)
			So(sim.calls, ShouldEqual, 1)
		})
	})

	Convey("Given the simulator as the selected target", t, func() {
		simErr := errors.New("simulator broke")
		sim := &fixedBackend{name: "sim", err: simErr}
		dispatcher := NewDispatcher(nil, NewMetrics(), quietLogger())
		_, err := dispatcher.Execute(ctx, circuit, &Selection{Target: sim}, 1024)

		Convey("Its failure should not be retried", func() {
			So(errors.Is(err, simErr), ShouldBeTrue)
			So(sim.calls, ShouldEqual, 1)
		})
	})
}
