package report_test

import (
	"testing"
	"time"

	enumerate "github.com/okian/keel/internal/domain/enumerate"
	model "github.com/okian/keel/internal/domain/model"
	report "github.com/okian/keel/internal/domain/report"
	stability "github.com/okian/keel/internal/domain/stability"
	. "github.com/smartystreets/goconvey/convey"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func swap(pid, pname, cid, cname, give, take string, gain float64) enumerate.Swap {
	return enumerate.Swap{
		ParticipantID:    pid,
		ParticipantName:  pname,
		CounterpartyID:   cid,
		CounterpartyName: cname,
		GiveSlot:         give,
		TakeSlot:         take,
		Gain:             gain,
	}
}

func TestAssemble(t *testing.T) {
	Convey("Given an unstable enumeration result", t, func() {
		snap := &model.Snapshot{
			Participants: []model.Participant{
				{ID: "p-a", Name: "Ada"},
				{ID: "p-b", Name: "Ben"},
				{ID: "p-c", Name: "Cyd"},
			},
			Assignments: []model.Assignment{
				{ID: "a-1", ParticipantID: "p-a", Slot: "slot-1"},
				{ID: "a-2", ParticipantID: "p-b", Slot: "slot-2"},
				{ID: "a-3", ParticipantID: "p-c", Slot: "slot-3"},
			},
		}
		enum := &enumerate.Result{
			ByParticipant: map[string][]enumerate.Swap{
				"p-a": {swap("p-a", "Ada", "p-b", "Ben", "slot-1", "slot-2", 1.0)},
				"p-b": {swap("p-b", "Ben", "p-a", "Ada", "slot-2", "slot-1", 0.5)},
			},
			Counts: map[string]int{"p-a": 1, "p-b": 1},
			Total:  2,
		}
		asm := report.NewAssembler(report.WithClock(fixedClock))

		Convey("When assembling the report", func() {
			rpt := asm.Assemble(report.Inputs{
				Snapshot:    snap,
				Enumeration: enum,
				Distance:    2.0 / 3.0,
				Tier:        stability.TierCritical,
				IsStable:    false,
				Predicted:   1,
				StableBelow: 0.05,
			})

			Convey("Then the headline fields carry through", func() {
				So(rpt.AnalysisID, ShouldNotBeEmpty)
				So(rpt.NashDistance, ShouldAlmostEqual, 2.0/3.0)
				So(rpt.IsStable, ShouldBeFalse)
				So(rpt.StabilityLevel, ShouldEqual, stability.TierCritical)
				So(rpt.BeneficialDeviations, ShouldEqual, 2)
				So(rpt.TotalAssignments, ShouldEqual, 3)
				So(rpt.PredictedSwapRequests, ShouldEqual, 1)
				So(rpt.AnalysisTimestamp.Equal(fixedClock()), ShouldBeTrue)
			})

			Convey("And instabilities rank by gain descending", func() {
				So(rpt.TopInstabilities, ShouldHaveLength, 2)
				So(rpt.TopInstabilities[0].ParticipantID, ShouldEqual, "p-a")
				So(rpt.TopInstabilities[0].UtilityGain, ShouldAlmostEqual, 1.0)
				So(rpt.TopInstabilities[1].ParticipantID, ShouldEqual, "p-b")
			})

			Convey("And the instability warning cites distance and tier", func() {
				So(rpt.Warnings, ShouldContain,
					"nash distance 0.667 exceeds the stable threshold 0.05 (CRITICAL)")
			})

			Convey("And the mutual envy yields a single recommendation", func() {
				So(rpt.Recommendations, ShouldHaveLength, 1)
				So(rpt.Recommendations[0], ShouldEqual,
					"consider swapping Ada (slot slot-1) with Ben (slot slot-2), utility gain 1.00")
			})
		})
	})

	Convey("Given ties on utility gain", t, func() {
		enum := &enumerate.Result{
			ByParticipant: map[string][]enumerate.Swap{
				"p-b": {swap("p-b", "Ben", "p-c", "Cyd", "slot-2", "slot-3", 0.4)},
				"p-a": {
					swap("p-a", "Ada", "p-c", "Cyd", "slot-1", "slot-3", 0.4),
					swap("p-a", "Ada", "p-b", "Ben", "slot-4", "slot-2", 0.4),
				},
			},
			Counts: map[string]int{"p-a": 2, "p-b": 1},
			Total:  3,
		}
		snap := &model.Snapshot{
			Participants: []model.Participant{
				{ID: "p-a", Name: "Ada"},
				{ID: "p-b", Name: "Ben"},
				{ID: "p-c", Name: "Cyd"},
			},
		}
		asm := report.NewAssembler(report.WithClock(fixedClock))

		Convey("When assembling twice", func() {
			in := report.Inputs{
				Snapshot:    snap,
				Enumeration: enum,
				Distance:    0.5,
				Tier:        stability.TierCritical,
				StableBelow: 0.05,
			}
			first := asm.Assemble(in)
			second := asm.Assemble(in)

			Convey("Then ties break by participant, counterparty, then slots", func() {
				So(first.TopInstabilities, ShouldHaveLength, 3)
				So(first.TopInstabilities[0].ParticipantID, ShouldEqual, "p-a")
				So(first.TopInstabilities[0].CounterpartyID, ShouldEqual, "p-b")
				So(first.TopInstabilities[1].ParticipantID, ShouldEqual, "p-a")
				So(first.TopInstabilities[1].CounterpartyID, ShouldEqual, "p-c")
				So(first.TopInstabilities[2].ParticipantID, ShouldEqual, "p-b")
			})

			Convey("And the ordering is identical run to run", func() {
				So(second.TopInstabilities, ShouldResemble, first.TopInstabilities)
			})
		})
	})

	Convey("Given more instabilities than the configured top K", t, func() {
		enum := &enumerate.Result{
			ByParticipant: map[string][]enumerate.Swap{
				"p-a": {
					swap("p-a", "Ada", "p-b", "Ben", "slot-1", "slot-2", 0.9),
					swap("p-a", "Ada", "p-c", "Cyd", "slot-4", "slot-3", 0.7),
					swap("p-a", "Ada", "p-d", "Dee", "slot-5", "slot-6", 0.3),
				},
			},
			Counts: map[string]int{"p-a": 3},
			Total:  3,
		}
		snap := &model.Snapshot{
			Participants: []model.Participant{{ID: "p-a", Name: "Ada"}},
		}
		asm := report.NewAssembler(report.WithTopK(2), report.WithClock(fixedClock))

		Convey("When assembling", func() {
			rpt := asm.Assemble(report.Inputs{
				Snapshot:    snap,
				Enumeration: enum,
				Distance:    1.0,
				Tier:        stability.TierCritical,
				StableBelow: 0.05,
			})

			Convey("Then only the strongest K remain", func() {
				So(rpt.TopInstabilities, ShouldHaveLength, 2)
				So(rpt.TopInstabilities[0].UtilityGain, ShouldAlmostEqual, 0.9)
				So(rpt.TopInstabilities[1].UtilityGain, ShouldAlmostEqual, 0.7)
			})

			Convey("And the concentration warning names the participant", func() {
				So(rpt.Warnings, ShouldContain,
					"participant Ada (p-a) has 3 beneficial swaps available")
			})
		})
	})

	Convey("Given a stable schedule", t, func() {
		snap := &model.Snapshot{
			Participants: []model.Participant{{ID: "p-a", Name: "Ada"}},
			Assignments: []model.Assignment{
				{ID: "a-1", ParticipantID: "p-a", Slot: "slot-1"},
			},
		}
		enum := &enumerate.Result{
			ByParticipant: map[string][]enumerate.Swap{},
			Counts:        map[string]int{},
		}
		asm := report.NewAssembler(report.WithClock(fixedClock))

		Convey("When assembling with matrix clamp warnings", func() {
			rpt := asm.Assemble(report.Inputs{
				Snapshot:      snap,
				Enumeration:   enum,
				Distance:      0.0,
				Tier:          stability.TierStable,
				IsStable:      true,
				BuildWarnings: []string{"clamp warning"},
				StableBelow:   0.05,
			})

			Convey("Then build warnings survive but no instability warning appears", func() {
				So(rpt.Warnings, ShouldResemble, []string{"clamp warning"})
				So(rpt.TopInstabilities, ShouldBeEmpty)
				So(rpt.Recommendations, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an approximate enumeration", t, func() {
		snap := &model.Snapshot{
			Participants: []model.Participant{{ID: "p-a", Name: "Ada"}},
		}
		enum := &enumerate.Result{
			ByParticipant: map[string][]enumerate.Swap{},
			Counts:        map[string]int{},
			Approximate:   true,
		}
		asm := report.NewAssembler(report.WithClock(fixedClock))

		Convey("When assembling", func() {
			rpt := asm.Assemble(report.Inputs{
				Snapshot:    snap,
				Enumeration: enum,
				Distance:    0.0,
				Tier:        stability.TierStable,
				IsStable:    true,
				StableBelow: 0.05,
			})

			Convey("Then the lower-bound caveat is reported", func() {
				So(rpt.Warnings, ShouldContain,
					"deviation counts are lower bounds: enumeration ran in approximate mode")
			})
		})
	})
}
