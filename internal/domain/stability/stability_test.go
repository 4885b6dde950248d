package stability_test

import (
	"testing"

	stability "github.com/okian/keel/internal/domain/stability"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given deviation and assignment counts", t, func() {
		Convey("When assignments exist", func() {
			Convey("Then distance is the deviation fraction", func() {
				So(stability.Distance(2, 3), ShouldAlmostEqual, 2.0/3.0)
				So(stability.Distance(0, 10), ShouldEqual, 0.0)
				So(stability.Distance(5, 5), ShouldEqual, 1.0)
			})
		})

		Convey("When deviations nominally exceed assignments", func() {
			Convey("Then distance caps at one", func() {
				So(stability.Distance(12, 5), ShouldEqual, 1.0)
			})
		})

		Convey("When the schedule is empty", func() {
			Convey("Then distance is zero", func() {
				So(stability.Distance(0, 0), ShouldEqual, 0.0)
				So(stability.Distance(3, 0), ShouldEqual, 0.0)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given the default tier boundaries", t, func() {
		th := stability.DefaultThresholds()

		Convey("When classifying distances across each boundary", func() {
			Convey("Then each half-open band maps to its tier", func() {
				So(th.Classify(0.0), ShouldEqual, stability.TierStable)
				So(th.Classify(0.049), ShouldEqual, stability.TierStable)
				So(th.Classify(0.05), ShouldEqual, stability.TierMarginal)
				So(th.Classify(0.149), ShouldEqual, stability.TierMarginal)
				So(th.Classify(0.15), ShouldEqual, stability.TierUnstable)
				So(th.Classify(0.299), ShouldEqual, stability.TierUnstable)
				So(th.Classify(0.30), ShouldEqual, stability.TierCritical)
				So(th.Classify(1.0), ShouldEqual, stability.TierCritical)
			})
		})

		Convey("When checking stability", func() {
			Convey("Then the stable bound is strict", func() {
				So(th.IsStable(0.049), ShouldBeTrue)
				So(th.IsStable(0.05), ShouldBeFalse)
			})
		})
	})

	Convey("Given custom boundaries", t, func() {
		Convey("When ascending and positive", func() {
			th := stability.Thresholds{Stable: 0.10, Marginal: 0.40, Unstable: 0.80}

			Convey("Then they validate and apply", func() {
				So(th.Valid(), ShouldBeTrue)
				So(th.Classify(0.30), ShouldEqual, stability.TierMarginal)
			})
		})

		Convey("When out of order or non-positive", func() {
			Convey("Then they fail validation", func() {
				So(stability.Thresholds{Stable: 0.2, Marginal: 0.1, Unstable: 0.3}.Valid(), ShouldBeFalse)
				So(stability.Thresholds{Stable: 0, Marginal: 0.1, Unstable: 0.3}.Valid(), ShouldBeFalse)
			})
		})
	})
}

func TestPredictSwaps(t *testing.T) {
	Convey("Given the default prediction constants", t, func() {
		pred := stability.DefaultPrediction()

		Convey("When predicting for a mid-size schedule", func() {
			Convey("Then the linear rate model applies", func() {
				// 100 * (0.10 + 0.20*0.50) = 20
				So(pred.PredictSwaps(0.20, 100), ShouldEqual, 20)
				// 3 * (0.10 + 0.667*0.50) = 1.3005, rounds to 1
				So(pred.PredictSwaps(2.0/3.0, 3), ShouldEqual, 1)
			})
		})

		Convey("When the schedule is empty", func() {
			Convey("Then the prediction is zero", func() {
				So(pred.PredictSwaps(0.5, 0), ShouldEqual, 0)
			})
		})
	})

	Convey("Given constants that would go negative", t, func() {
		pred := stability.Prediction{BaselineRate: -0.5, PressureCoefficient: 0.1}

		Convey("When predicting", func() {
			Convey("Then the estimate floors at zero", func() {
				So(pred.PredictSwaps(0.1, 10), ShouldEqual, 0)
			})
		})
	})
}
