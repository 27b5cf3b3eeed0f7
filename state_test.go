package qcircuit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHistogram(t *testing.T) {
	Convey("Given a histogram", t, func() {
		h := Histogram{"110": 124, "101": 900}

		Convey("Outcomes should be sorted by bitstring with probabilities", func() {
			outcomes := h.Outcomes()
			So(outcomes[0].Bitstring, ShouldEqual, "101")
			So(outcomes[1].Bitstring, ShouldEqual, "110")
			So(outcomes[0].Probability, ShouldAlmostEqual, 900.0/1024, tolerance)
		})

		Convey("MostFrequent should pick the highest count", func() {
			best, ok := h.MostFrequent()
			So(ok, ShouldBeTrue)
			So(best.Bitstring, ShouldEqual, "101")
			So(best.Count, ShouldEqual, 900)

			idx, err := best.Index()
			So(err, ShouldBeNil)
			So(idx, ShouldEqual, 5)
		})
	})

	Convey("Given a tie", t, func() {
		h := Histogram{"11": 512, "01": 512}

		Convey("The smaller bitstring should win every time", func() {
			for i := 0; i < 20; i++ {
				best, _ := h.MostFrequent()
				So(best.Bitstring, ShouldEqual, "01")
			}
		})
	})

	Convey("Given an empty histogram", t, func() {
		_, ok := Histogram{}.MostFrequent()

		Convey("There should be no outcome", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a key that is not binary", t, func() {
		_, err := Outcome{Bitstring: "1x0"}.Index()

		Convey("Index should fail", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
