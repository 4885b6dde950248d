// Package matrix builds the utility lookup table consumed by swap enumeration.
//
// The builder evaluates the strategy over every (participant, assignment)
// pair exactly once, up front. Later pipeline stages only read the finished
// table, so a strategy that performs blocking I/O never runs inside the
// parallel enumeration phase.
package matrix

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/internal/domain/utility"
	"github.com/okian/keel/pkg/logger"
	"github.com/okian/keel/pkg/metrics"
)

// pairKey addresses one (participant, assignment) cell.
type pairKey struct {
	participantID string
	assignmentID  string
}

// Matrix is the complete utility table for one snapshot. Read-only after Build.
type Matrix struct {
	scores      map[pairKey]float64
	evaluations int
}

// Score returns the utility of assignment for participant. The second return
// is false when the pair was not part of the snapshot the matrix was built from.
func (m *Matrix) Score(participantID, assignmentID string) (float64, bool) {
	score, ok := m.scores[pairKey{participantID: participantID, assignmentID: assignmentID}]
	return score, ok
}

// Evaluations returns how many strategy evaluations produced the matrix.
func (m *Matrix) Evaluations() int { return m.evaluations }

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder evaluates a utility strategy over a snapshot. Stateless across
// Build calls; no caching happens between snapshots.
type Builder struct {
	logger logger.Logger
}

// NewBuilder creates a matrix builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: logger.Get().Named("matrix"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build evaluates strategy over every participant x assignment pair in snap.
//
// Scores outside [0,1] are clamped to the nearest bound and reported in the
// returned warnings rather than failing the analysis. A strategy evaluation
// error is fatal: the engine assumes the strategy is total over the snapshot
// domain, so a failure signals a configuration or data problem upstream.
func (b *Builder) Build(ctx context.Context, snap *model.Snapshot, strategy utility.Strategy) (*Matrix, []string, error) {
	start := time.Now()
	defer func() {
		metrics.RecordMatrixBuildDuration(float64(time.Since(start).Milliseconds()))
	}()

	m := &Matrix{
		scores: make(map[pairKey]float64, len(snap.Participants)*len(snap.Assignments)),
	}
	var warnings []string

	for _, p := range snap.Participants {
		for _, a := range snap.Assignments {
			score, err := strategy.Score(ctx, p, a)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: strategy %q on participant %q assignment %q: %v",
					ErrStrategyFailure, strategy.Name(), p.ID, a.ID, err)
			}
			m.evaluations++

			if score < 0 || score > 1 {
				clamped := score
				if clamped < 0 {
					clamped = 0
				} else {
					clamped = 1
				}
				warnings = append(warnings, fmt.Sprintf(
					"utility score %.4f for participant %s on assignment %s out of range, clamped to %.1f",
					score, p.ID, a.ID, clamped))
				metrics.RecordScoreClamp()
				b.logger.Warn(ctx, "clamped out-of-range utility score",
					logger.String("participant", p.ID),
					logger.String("assignment", a.ID),
					logger.Float64("score", score),
				)
				score = clamped
			}

			m.scores[pairKey{participantID: p.ID, assignmentID: a.ID}] = score
		}
	}

	metrics.RecordStrategyEvaluations(m.evaluations)
	b.logger.Debug(ctx, "utility matrix built",
		logger.Int("participants", len(snap.Participants)),
		logger.Int("assignments", len(snap.Assignments)),
		logger.Int("evaluations", m.evaluations),
	)

	return m, warnings, nil
}
