package utility

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/keel/internal/domain/model"
)

// Default trail scoring constants.
const (
	defaultDeposit      = 1.0
	defaultEvaporation  = 0.25
	defaultTrailFloor   = 0.1
	defaultTrailNeutral = 0.5
)

// SwapRecord is one historical acquisition of a slot by a participant, used
// to deposit trail. Age counts elapsed scheduling periods since the record,
// 0 being the most recent period.
type SwapRecord struct {
	ParticipantID string `json:"participant_id"`
	Slot          string `json:"slot"`
	Age           int    `json:"age"`
}

// TrailOption applies a configuration option to the TrailStrategy.
type TrailOption func(*TrailStrategy)

// WithDeposit sets the trail amount deposited per historical record.
func WithDeposit(deposit float64) TrailOption {
	return func(s *TrailStrategy) {
		if deposit > 0 {
			s.deposit = deposit
		}
	}
}

// WithEvaporation sets the per-period trail decay rate in (0,1).
func WithEvaporation(rate float64) TrailOption {
	return func(s *TrailStrategy) {
		if rate > 0 && rate < 1 {
			s.evaporation = rate
		}
	}
}

// WithTrailFloor sets the minimum score for slots a participant has trail data
// about but never favored.
func WithTrailFloor(floor float64) TrailOption {
	return func(s *TrailStrategy) {
		if floor >= 0 && floor < 1 {
			s.floor = floor
		}
	}
}

// WithTrailNeutral sets the score for participants with no history at all.
func WithTrailNeutral(neutral float64) TrailOption {
	return func(s *TrailStrategy) {
		if neutral >= 0 && neutral <= 1 {
			s.neutral = neutral
		}
	}
}

// TrailStrategy scores assignments from pheromone-style trails deposited by
// historical swap records: slots a participant repeatedly moved toward carry
// high trail, decayed by age.
type TrailStrategy struct {
	deposit     float64
	evaporation float64
	floor       float64
	neutral     float64

	// trail[participantID][slot] accumulated at construction time; read-only after.
	trail    map[string]map[string]float64
	maxTrail map[string]float64
}

// NewTrailStrategy builds the trail table from history once; scoring after
// construction performs no I/O and reads only the precomputed table.
func NewTrailStrategy(history []SwapRecord, opts ...TrailOption) *TrailStrategy {
	s := &TrailStrategy{
		deposit:     defaultDeposit,
		evaporation: defaultEvaporation,
		floor:       defaultTrailFloor,
		neutral:     defaultTrailNeutral,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.trail = make(map[string]map[string]float64)
	s.maxTrail = make(map[string]float64)
	for _, rec := range history {
		if rec.ParticipantID == "" || rec.Slot == "" || rec.Age < 0 {
			continue
		}
		slots, ok := s.trail[rec.ParticipantID]
		if !ok {
			slots = make(map[string]float64)
			s.trail[rec.ParticipantID] = slots
		}
		slots[rec.Slot] += s.deposit * math.Pow(1-s.evaporation, float64(rec.Age))
		if slots[rec.Slot] > s.maxTrail[rec.ParticipantID] {
			s.maxTrail[rec.ParticipantID] = slots[rec.Slot]
		}
	}

	return s
}

// Name identifies the strategy for cache keying.
func (s *TrailStrategy) Name() string { return "trail" }

// Score maps the participant's trail level for the assignment's slot into
// [floor,1], normalized against their strongest trail.
func (s *TrailStrategy) Score(ctx context.Context, p model.Participant, a model.Assignment) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("trail scoring interrupted: %w", ctx.Err())
	default:
	}

	slots, ok := s.trail[p.ID]
	if !ok || s.maxTrail[p.ID] <= 0 {
		return s.neutral, nil
	}

	level := slots[a.Slot]
	score := s.floor + (1-s.floor)*(level/s.maxTrail[p.ID])
	return math.Max(0, math.Min(1, score)), nil
}
