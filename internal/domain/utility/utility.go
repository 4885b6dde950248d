// Package utility defines the contract for scoring participant satisfaction
// with assignments.
//
// A Strategy is a total, deterministic function over every (participant,
// assignment) pair in a snapshot. Implementations may consult preference
// records or historical swap data at construction time, but a built strategy
// must be side-effect-free and must not vary for a fixed snapshot.
package utility

import (
	"context"

	"github.com/okian/keel/internal/domain/model"
)

// Strategy computes a desirability score in [0,1] for a participant holding
// an assignment. 0 is maximally undesirable, 1 maximally desirable.
type Strategy interface {
	// Name identifies the strategy, e.g. for report cache keys. Stable across runs.
	Name() string

	// Score computes the score, honoring ctx for cancellation. An error means
	// the strategy cannot cover the pair and aborts the whole analysis.
	Score(ctx context.Context, p model.Participant, a model.Assignment) (float64, error)
}
