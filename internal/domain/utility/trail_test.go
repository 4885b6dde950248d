package utility_test

import (
	"context"
	"testing"

	model "github.com/okian/keel/internal/domain/model"
	utility "github.com/okian/keel/internal/domain/utility"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrailStrategy(t *testing.T) {
	Convey("Given a trail strategy built from swap history", t, func() {
		history := []utility.SwapRecord{
			{ParticipantID: "p-1", Slot: "2026-W01", Age: 0},
			{ParticipantID: "p-1", Slot: "2026-W01", Age: 1},
			{ParticipantID: "p-1", Slot: "2026-W02", Age: 4},
		}
		strat := utility.NewTrailStrategy(history)
		ada := model.Participant{ID: "p-1", Name: "Ada"}

		Convey("When scoring the strongest-trail slot", func() {
			score, err := strat.Score(context.Background(), ada, model.Assignment{
				ID: "a-1", ParticipantID: "p-1", Slot: "2026-W01",
			})

			Convey("Then it scores a full 1.0", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 1.0)
			})
		})

		Convey("When scoring a slot with a weak, aged trail", func() {
			score, err := strat.Score(context.Background(), ada, model.Assignment{
				ID: "a-2", ParticipantID: "p-1", Slot: "2026-W02",
			})

			Convey("Then it scores between the floor and 1", func() {
				So(err, ShouldBeNil)
				So(score, ShouldBeGreaterThan, 0.1)
				So(score, ShouldBeLessThan, 1.0)
			})
		})

		Convey("When scoring a slot without any trail", func() {
			score, err := strat.Score(context.Background(), ada, model.Assignment{
				ID: "a-3", ParticipantID: "p-1", Slot: "2026-W09",
			})

			Convey("Then the floor applies", func() {
				So(err, ShouldBeNil)
				So(score, ShouldAlmostEqual, 0.1, 1e-9)
			})
		})

		Convey("When scoring a participant with no history", func() {
			score, err := strat.Score(context.Background(), model.Participant{ID: "p-new"}, model.Assignment{
				ID: "a-4", ParticipantID: "p-new", Slot: "2026-W01",
			})

			Convey("Then the neutral score applies", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0.5)
			})
		})

		Convey("When evaporation is turned up", func() {
			fast := utility.NewTrailStrategy(history, utility.WithEvaporation(0.9))

			Convey("Then aged trails fade toward the floor", func() {
				slow, err1 := strat.Score(context.Background(), ada, model.Assignment{
					ID: "a-5", ParticipantID: "p-1", Slot: "2026-W02",
				})
				faded, err2 := fast.Score(context.Background(), ada, model.Assignment{
					ID: "a-5", ParticipantID: "p-1", Slot: "2026-W02",
				})
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(faded, ShouldBeLessThan, slow)
			})
		})

		Convey("When history contains malformed records", func() {
			dirty := utility.NewTrailStrategy([]utility.SwapRecord{
				{ParticipantID: "", Slot: "2026-W01", Age: 0},
				{ParticipantID: "p-1", Slot: "", Age: 0},
				{ParticipantID: "p-1", Slot: "2026-W01", Age: -3},
			})

			Convey("Then they are skipped and scoring stays neutral", func() {
				score, err := dirty.Score(context.Background(), ada, model.Assignment{
					ID: "a-6", ParticipantID: "p-1", Slot: "2026-W01",
				})
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0.5)
			})
		})
	})
}
