// Package fixture generates synthetic schedule snapshots for demos,
// benchmarks, and tests.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/internal/domain/utility"
)

// Default generation constants.
const (
	defaultParticipants = 12
	defaultSeed         = 42
	rankedSlotsPerRider = 3
	historyPerRider     = 2
	maxHistoryAge       = 6
)

// Workload categories cycled across generated assignments.
var workloads = []string{"day", "night", "weekend"}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithParticipants sets the roster size.
func WithParticipants(count int) Option {
	return func(g *Generator) {
		if count > 0 {
			g.participants = count
		}
	}
}

// WithSeed sets the random seed so generated rosters are reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// Generator produces one synthetic roster: a snapshot with one assignment per
// participant plus matching preference profiles and swap history.
type Generator struct {
	participants int
	seed         int64

	rng      *rand.Rand
	snapshot *model.Snapshot
	profiles map[string]utility.PreferenceProfile
	history  []utility.SwapRecord
}

// NewGenerator creates a generator and materializes the roster once.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		participants: defaultParticipants,
		seed:         defaultSeed,
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	g.rng = rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic seed for reproducible fixtures
	g.generate()

	return g
}

// Snapshot returns the generated schedule snapshot.
func (g *Generator) Snapshot() *model.Snapshot { return g.snapshot }

// Profiles returns preference profiles keyed by participant id.
func (g *Generator) Profiles() map[string]utility.PreferenceProfile { return g.profiles }

// History returns synthetic swap history for trail-based scoring.
func (g *Generator) History() []utility.SwapRecord { return g.history }

// generate builds the roster, one weekly slot per participant.
func (g *Generator) generate() {
	slots := make([]string, g.participants)
	for i := range slots {
		slots[i] = fmt.Sprintf("2026-W%02d", i+1)
	}

	snap := &model.Snapshot{
		Participants: make([]model.Participant, g.participants),
		Assignments:  make([]model.Assignment, g.participants),
	}
	g.profiles = make(map[string]utility.PreferenceProfile, g.participants)

	for i := 0; i < g.participants; i++ {
		pid := uuid.New().String()
		snap.Participants[i] = model.Participant{
			ID:   pid,
			Name: fmt.Sprintf("Crew %02d", i+1),
		}
		snap.Assignments[i] = model.Assignment{
			ID:            uuid.New().String(),
			ParticipantID: pid,
			Slot:          slots[i],
			Workload:      workloads[i%len(workloads)],
		}

		g.profiles[pid] = g.randomProfile(slots, i)
		for h := 0; h < historyPerRider; h++ {
			g.history = append(g.history, utility.SwapRecord{
				ParticipantID: pid,
				Slot:          slots[g.rng.Intn(len(slots))],
				Age:           g.rng.Intn(maxHistoryAge),
			})
		}
	}

	g.snapshot = snap
}

// randomProfile ranks a few random slots and blocks one slot the participant
// did not rank first.
func (g *Generator) randomProfile(slots []string, owner int) utility.PreferenceProfile {
	perm := g.rng.Perm(len(slots))

	ranked := make([]string, 0, rankedSlotsPerRider)
	for _, idx := range perm {
		if len(ranked) == rankedSlotsPerRider {
			break
		}
		ranked = append(ranked, slots[idx])
	}

	var blocked []string
	if len(perm) > rankedSlotsPerRider {
		for _, idx := range perm[rankedSlotsPerRider:] {
			if idx != owner {
				blocked = append(blocked, slots[idx])
				break
			}
		}
	}

	return utility.PreferenceProfile{
		RankedSlots:  ranked,
		BlockedSlots: blocked,
		WorkloadWeights: map[string]float64{
			"night": 0.6 + 0.4*g.rng.Float64(),
		},
	}
}
