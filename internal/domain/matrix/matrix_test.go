package matrix_test

import (
	"context"
	"errors"
	"testing"

	matrix "github.com/okian/keel/internal/domain/matrix"
	model "github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// tableStrategy serves scripted scores keyed by "participantID|assignmentID".
type tableStrategy struct {
	name   string
	scores map[string]float64
	err    error
}

func (s *tableStrategy) Name() string { return s.name }

func (s *tableStrategy) Score(_ context.Context, p model.Participant, a model.Assignment) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[p.ID+"|"+a.ID], nil
}

func twoPersonSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Participants: []model.Participant{
			{ID: "p-1", Name: "Ada"},
			{ID: "p-2", Name: "Ben"},
		},
		Assignments: []model.Assignment{
			{ID: "a-1", ParticipantID: "p-1", Slot: "2026-W01"},
			{ID: "a-2", ParticipantID: "p-2", Slot: "2026-W02"},
		},
	}
}

func TestBuilderBuild(t *testing.T) {
	Convey("Given a snapshot and a well-behaved strategy", t, func() {
		snap := twoPersonSnapshot()
		strat := &tableStrategy{
			name: "table",
			scores: map[string]float64{
				"p-1|a-1": 0.2,
				"p-1|a-2": 0.9,
				"p-2|a-1": 0.6,
				"p-2|a-2": 0.4,
			},
		}
		builder := matrix.NewBuilder()

		Convey("When building the matrix", func() {
			m, warnings, err := builder.Build(context.Background(), snap, strat)

			Convey("Then every participant x assignment pair is covered", func() {
				So(err, ShouldBeNil)
				So(warnings, ShouldBeEmpty)
				So(m.Evaluations(), ShouldEqual, 4)

				score, ok := m.Score("p-1", "a-2")
				So(ok, ShouldBeTrue)
				So(score, ShouldEqual, 0.9)

				score, ok = m.Score("p-2", "a-1")
				So(ok, ShouldBeTrue)
				So(score, ShouldEqual, 0.6)
			})

			Convey("And unknown pairs report absence", func() {
				So(err, ShouldBeNil)
				_, ok := m.Score("p-1", "a-nope")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a strategy that wanders out of range", t, func() {
		snap := twoPersonSnapshot()
		strat := &tableStrategy{
			name: "wild",
			scores: map[string]float64{
				"p-1|a-1": 1.7,
				"p-1|a-2": -0.3,
				"p-2|a-1": 0.5,
				"p-2|a-2": 0.5,
			},
		}
		builder := matrix.NewBuilder()

		Convey("When building the matrix", func() {
			m, warnings, err := builder.Build(context.Background(), snap, strat)

			Convey("Then scores are clamped and warnings recorded", func() {
				So(err, ShouldBeNil)
				So(warnings, ShouldHaveLength, 2)

				high, _ := m.Score("p-1", "a-1")
				So(high, ShouldEqual, 1.0)

				low, _ := m.Score("p-1", "a-2")
				So(low, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given a strategy that fails on evaluation", t, func() {
		snap := twoPersonSnapshot()
		boom := errors.New("preference records unavailable")
		builder := matrix.NewBuilder()

		Convey("When building the matrix", func() {
			m, _, err := builder.Build(context.Background(), snap, &tableStrategy{name: "broken", err: boom})

			Convey("Then the build aborts with ErrStrategyFailure", func() {
				So(m, ShouldBeNil)
				So(errors.Is(err, matrix.ErrStrategyFailure), ShouldBeTrue)
			})
		})
	})

	Convey("Given an empty snapshot", t, func() {
		builder := matrix.NewBuilder()

		Convey("When building the matrix", func() {
			m, warnings, err := builder.Build(context.Background(), &model.Snapshot{}, &tableStrategy{name: "table"})

			Convey("Then it succeeds with zero evaluations", func() {
				So(err, ShouldBeNil)
				So(warnings, ShouldBeEmpty)
				So(m.Evaluations(), ShouldEqual, 0)
			})
		})
	})
}
