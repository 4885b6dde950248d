package utility

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/keel/internal/domain/model"
)

// Default preference scoring constants.
const (
	defaultRankFalloff  = 0.15
	defaultNeutralScore = 0.5
)

// PreferenceProfile captures a participant's explicit scheduling preferences.
type PreferenceProfile struct {
	// RankedSlots lists preferred time slots, best first.
	RankedSlots []string `json:"ranked_slots"`

	// BlockedSlots lists slots the participant cannot serve (absence windows).
	BlockedSlots []string `json:"blocked_slots"`

	// WorkloadWeights scales scores per workload category, in [0,1].
	WorkloadWeights map[string]float64 `json:"workload_weights"`
}

// PreferenceOption applies a configuration option to the PreferenceStrategy.
type PreferenceOption func(*PreferenceStrategy)

// WithRankFalloff sets how much each preference rank below the first costs.
func WithRankFalloff(falloff float64) PreferenceOption {
	return func(s *PreferenceStrategy) {
		if falloff > 0 {
			s.rankFalloff = falloff
		}
	}
}

// WithNeutralScore sets the score for slots a participant neither ranked nor blocked.
func WithNeutralScore(score float64) PreferenceOption {
	return func(s *PreferenceStrategy) {
		if score >= 0 && score <= 1 {
			s.neutralScore = score
		}
	}
}

// WithStrictProfiles makes scoring fail for participants without a profile
// instead of treating every slot as neutral.
func WithStrictProfiles(strict bool) PreferenceOption {
	return func(s *PreferenceStrategy) {
		s.strict = strict
	}
}

// PreferenceStrategy scores assignments from explicit preference records.
type PreferenceStrategy struct {
	profiles     map[string]PreferenceProfile
	rankFalloff  float64
	neutralScore float64
	strict       bool
}

// NewPreferenceStrategy creates a preference-based strategy over the given
// per-participant profiles. The profiles map is copied; later mutation by the
// caller does not affect the strategy.
func NewPreferenceStrategy(profiles map[string]PreferenceProfile, opts ...PreferenceOption) *PreferenceStrategy {
	s := &PreferenceStrategy{
		profiles:     make(map[string]PreferenceProfile, len(profiles)),
		rankFalloff:  defaultRankFalloff,
		neutralScore: defaultNeutralScore,
	}
	for id, profile := range profiles {
		s.profiles[id] = profile
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name identifies the strategy for cache keying.
func (s *PreferenceStrategy) Name() string { return "preference" }

// Score computes the preference score for participant p holding assignment a.
func (s *PreferenceStrategy) Score(ctx context.Context, p model.Participant, a model.Assignment) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("preference scoring interrupted: %w", ctx.Err())
	default:
	}

	profile, ok := s.profiles[p.ID]
	if !ok {
		if s.strict {
			return 0, fmt.Errorf("%w: %s", ErrNoProfile, p.ID)
		}
		return s.neutralScore, nil
	}

	for _, blocked := range profile.BlockedSlots {
		if blocked == a.Slot {
			return 0, nil
		}
	}

	score := s.neutralScore
	for rank, slot := range profile.RankedSlots {
		if slot == a.Slot {
			score = 1.0 - s.rankFalloff*float64(rank)
			break
		}
	}

	if weight, ok := profile.WorkloadWeights[a.Workload]; ok {
		score *= weight
	}

	return math.Max(0, math.Min(1, score)), nil
}
