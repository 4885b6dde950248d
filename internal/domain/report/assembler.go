package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/okian/keel/internal/domain/enumerate"
	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/internal/domain/stability"
)

// Default assembly configuration constants.
const (
	defaultTopK              = 20
	defaultNotableDeviations = 2
	maxRecommendations       = 3
)

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithTopK bounds the ranked instability detail list.
func WithTopK(k int) Option {
	return func(a *Assembler) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithNotableThreshold sets how many beneficial deviations a single
// participant may hold before earning a dedicated warning.
func WithNotableThreshold(threshold int) Option {
	return func(a *Assembler) {
		if threshold > 0 {
			a.notable = threshold
		}
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *Assembler) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// Inputs carries the upstream pipeline results into assembly.
type Inputs struct {
	Snapshot    *model.Snapshot
	Enumeration *enumerate.Result
	Distance    float64
	Tier        stability.Tier
	IsStable    bool
	Predicted   int
	// BuildWarnings are warnings accumulated during matrix construction
	// (clamped out-of-range scores).
	BuildWarnings []string
	// StableBelow is the stable-tier bound, cited in the instability warning.
	StableBelow float64
}

// Assembler composes the final immutable report from pipeline outputs.
// Text generation only; no side effects, no I/O.
type Assembler struct {
	topK    int
	notable int
	clock   func() time.Time
}

// NewAssembler creates an assembler with configuration options.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		topK:    defaultTopK,
		notable: defaultNotableDeviations,
		clock:   time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Assemble ranks the beneficial swaps, derives warnings and recommendations,
// and freezes everything into a StabilityReport.
func (a *Assembler) Assemble(in Inputs) *StabilityReport {
	details := a.rankInstabilities(in.Enumeration)

	rpt := &StabilityReport{
		AnalysisID:            uuid.New().String(),
		NashDistance:          in.Distance,
		IsStable:              in.IsStable,
		StabilityLevel:        in.Tier,
		BeneficialDeviations:  in.Enumeration.Total,
		TotalAssignments:      len(in.Snapshot.Assignments),
		PredictedSwapRequests: in.Predicted,
		TopInstabilities:      details,
		AnalysisTimestamp:     a.clock().UTC(),
		Warnings:              a.buildWarnings(in),
		Recommendations:       a.buildRecommendations(details),
	}

	return rpt
}

// rankInstabilities flattens the per-participant swaps and ranks them by
// utility gain descending. Ties break by (participant id, counterparty id)
// ascending, then by the slot pair, so repeated analyses of one snapshot
// produce byte-identical ordering.
func (a *Assembler) rankInstabilities(enum *enumerate.Result) []InstabilityDetail {
	var all []InstabilityDetail
	for _, swaps := range enum.ByParticipant {
		for _, s := range swaps {
			all = append(all, InstabilityDetail{
				ParticipantID:    s.ParticipantID,
				ParticipantName:  s.ParticipantName,
				CurrentSlot:      s.GiveSlot,
				PreferredSlot:    s.TakeSlot,
				CounterpartyID:   s.CounterpartyID,
				CounterpartyName: s.CounterpartyName,
				UtilityGain:      s.Gain,
			})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].UtilityGain != all[j].UtilityGain {
			return all[i].UtilityGain > all[j].UtilityGain
		}
		if all[i].ParticipantID != all[j].ParticipantID {
			return all[i].ParticipantID < all[j].ParticipantID
		}
		if all[i].CounterpartyID != all[j].CounterpartyID {
			return all[i].CounterpartyID < all[j].CounterpartyID
		}
		if all[i].CurrentSlot != all[j].CurrentSlot {
			return all[i].CurrentSlot < all[j].CurrentSlot
		}
		return all[i].PreferredSlot < all[j].PreferredSlot
	})

	if len(all) > a.topK {
		all = all[:a.topK]
	}
	return all
}

// buildWarnings collects matrix clamp warnings plus instability warnings.
func (a *Assembler) buildWarnings(in Inputs) []string {
	warnings := make([]string, 0, len(in.BuildWarnings))
	warnings = append(warnings, in.BuildWarnings...)

	if in.Enumeration.Approximate {
		warnings = append(warnings,
			"deviation counts are lower bounds: enumeration ran in approximate mode")
	}

	if in.IsStable {
		return warnings
	}

	warnings = append(warnings, fmt.Sprintf(
		"nash distance %.3f exceeds the stable threshold %.2f (%s)",
		in.Distance, in.StableBelow, in.Tier))

	// Roster order keeps the warning list deterministic.
	for _, p := range in.Snapshot.Participants {
		if count := in.Enumeration.Counts[p.ID]; count > a.notable {
			warnings = append(warnings, fmt.Sprintf(
				"participant %s (%s) has %d beneficial swaps available",
				p.Name, p.ID, count))
		}
	}

	return warnings
}

// buildRecommendations pairs the strongest instabilities into suggested swaps.
func (a *Assembler) buildRecommendations(details []InstabilityDetail) []string {
	var recs []string
	seen := make(map[string]struct{})
	for _, d := range details {
		if len(recs) >= maxRecommendations {
			break
		}
		// One suggestion per unordered participant pair.
		key := d.ParticipantID + "\x00" + d.CounterpartyID
		if d.CounterpartyID < d.ParticipantID {
			key = d.CounterpartyID + "\x00" + d.ParticipantID
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		recs = append(recs, fmt.Sprintf(
			"consider swapping %s (slot %s) with %s (slot %s), utility gain %.2f",
			d.ParticipantName, d.CurrentSlot, d.CounterpartyName, d.PreferredSlot, d.UtilityGain))
	}
	return recs
}
