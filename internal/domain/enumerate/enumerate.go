// Package enumerate searches a utility matrix for beneficial swaps.
//
// For each participant it considers giving up one owned assignment in
// exchange for exactly one assignment held by another participant. An owned
// assignment counts as one beneficial deviation when any strictly better
// acquisition exists for it, and the best such acquisition is retained as the
// swap detail. This models the pairwise unilateral deviation underlying the
// Nash distance; multi-way and multi-item trades are deliberately out of
// scope.
package enumerate

import (
	"context"
	"sync"
	"time"

	"github.com/okian/keel/internal/domain/matrix"
	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/pkg/logger"
	"github.com/okian/keel/pkg/metrics"
)

// Default enumeration configuration constants.
const (
	defaultEpsilon     = 1e-6
	defaultParallelism = 4
)

// Swap is one beneficial unilateral deviation: the participant would give up
// the "give" assignment to acquire the "take" assignment from the counterparty.
type Swap struct {
	ParticipantID    string
	ParticipantName  string
	CounterpartyID   string
	CounterpartyName string
	GiveAssignmentID string
	GiveSlot         string
	TakeAssignmentID string
	TakeSlot         string
	Gain             float64
}

// Result holds the enumeration outcome for one snapshot.
type Result struct {
	// ByParticipant maps each participant id to their retained swap details.
	// When a detail cap is configured the lists may be truncated.
	ByParticipant map[string][]Swap

	// Counts maps each participant id to their beneficial deviation count.
	// On the default path these are exact even when detail lists are capped;
	// only the approximate-counts opt-in makes them lower bounds.
	Counts map[string]int

	// Total is the sum of Counts across participants.
	Total int

	// Approximate reports that early stopping was enabled, so Total and
	// Counts are lower bounds rather than exact values.
	Approximate bool
}

// participantResult is one worker's output slot.
type participantResult struct {
	swaps []Swap
	count int
	err   error
}

// Enumerator runs the beneficial swap search. Stateless across calls; all
// per-call state lives on the stack of Enumerate.
type Enumerator struct {
	epsilon     float64
	parallelism int
	detailCap   int
	approximate bool
	logger      logger.Logger
}

// NewEnumerator creates an enumerator with configuration options.
func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{
		epsilon:     defaultEpsilon,
		parallelism: defaultParallelism,
		detailCap:   0, // unbounded
		logger:      logger.Get().Named("enumerate"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enumerate finds every beneficial swap available to each participant.
//
// The per-participant searches run on a bounded worker fan-out. Each worker
// reads only the shared immutable matrix and snapshot and writes only its own
// output slot, so no locking is needed; the deterministic ordering of the
// final report comes from the assembler's tie-break rule, not from worker
// completion order. Cancellation is checked between participants and yields
// ErrCancelled, never a partial result.
func (e *Enumerator) Enumerate(ctx context.Context, snap *model.Snapshot, m *matrix.Matrix) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.RecordEnumerationDuration(float64(time.Since(start).Milliseconds()))
	}()

	owned := snap.ByParticipant()
	results := make([]participantResult, len(snap.Participants))

	workers := e.parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(snap.Participants) {
		workers = len(snap.Participants)
	}

	tasks := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				// Cooperative cancellation between participants.
				select {
				case <-ctx.Done():
					results[idx].err = wrapCancelled(ctx.Err())
					continue
				default:
				}
				results[idx].swaps, results[idx].count, results[idx].err =
					e.searchParticipant(snap.Participants[idx], owned, snap, m)
			}
		}()
	}

	for idx := range snap.Participants {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	// Merge in roster order so the outcome is independent of scheduling.
	out := &Result{
		ByParticipant: make(map[string][]Swap, len(snap.Participants)),
		Counts:        make(map[string]int, len(snap.Participants)),
		Approximate:   e.approximate,
	}
	for idx, p := range snap.Participants {
		if err := results[idx].err; err != nil {
			return nil, err
		}
		if results[idx].count == 0 {
			continue
		}
		out.ByParticipant[p.ID] = results[idx].swaps
		out.Counts[p.ID] = results[idx].count
		out.Total += results[idx].count
	}

	metrics.RecordBeneficialSwaps(out.Total)
	e.logger.Debug(ctx, "beneficial swap enumeration finished",
		logger.Int("participants", len(snap.Participants)),
		logger.Int("beneficialSwaps", out.Total),
		logger.Bool("approximate", out.Approximate),
	)

	return out, nil
}

// searchParticipant enumerates beneficial deviations for a single participant.
// Each owned assignment contributes at most one deviation, carrying the best
// available acquisition; ties on gain break by (counterparty id, slot)
// ascending so the retained detail never depends on scan order.
func (e *Enumerator) searchParticipant(
	p model.Participant,
	owned map[string][]model.Assignment,
	snap *model.Snapshot,
	m *matrix.Matrix,
) ([]Swap, int, error) {
	var swaps []Swap
	count := 0

	for _, give := range owned[p.ID] {
		current, ok := m.Score(p.ID, give.ID)
		if !ok {
			return nil, 0, missingScoreError(p.ID, give.ID)
		}

		var best *model.Assignment
		var bestGain float64
		for i := range snap.Assignments {
			take := &snap.Assignments[i]
			if take.ParticipantID == p.ID {
				continue
			}

			candidate, ok := m.Score(p.ID, take.ID)
			if !ok {
				return nil, 0, missingScoreError(p.ID, take.ID)
			}
			if candidate <= current+e.epsilon {
				continue
			}

			gain := candidate - current
			if best == nil || gain > bestGain ||
				(gain == bestGain && (take.ParticipantID < best.ParticipantID ||
					(take.ParticipantID == best.ParticipantID && take.Slot < best.Slot))) {
				best = take
				bestGain = gain
			}
		}

		if best == nil {
			continue
		}

		count++
		if e.detailCap <= 0 || len(swaps) < e.detailCap {
			counterparty, _ := snap.ParticipantByID(best.ParticipantID)
			swaps = append(swaps, Swap{
				ParticipantID:    p.ID,
				ParticipantName:  p.Name,
				CounterpartyID:   counterparty.ID,
				CounterpartyName: counterparty.Name,
				GiveAssignmentID: give.ID,
				GiveSlot:         give.Slot,
				TakeAssignmentID: best.ID,
				TakeSlot:         best.Slot,
				Gain:             bestGain,
			})
		} else if e.approximate && count >= e.detailCap {
			// Early stop is only allowed when the caller accepted approximate
			// counts; the default path keeps counting so the distance formula
			// sees the exact total.
			return swaps, count, nil
		}
	}

	return swaps, count, nil
}
