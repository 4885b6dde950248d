// Package model contains the schedule domain models passed between layers.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Participant is a roster member holding assignments in a schedule.
type Participant struct {
	ID   string `json:"id"`   // opaque unique identifier
	Name string `json:"name"` // display name
}

// Assignment is a single scheduled duty owned by exactly one participant.
type Assignment struct {
	ID            string `json:"id"`             // unique assignment identifier
	ParticipantID string `json:"participant_id"` // owner at snapshot time
	Slot          string `json:"slot"`           // time-slot identifier, e.g. "2026-W36"
	Workload      string `json:"workload"`       // workload category consumed by strategies
}

// Snapshot is an immutable roster plus assignment set, the unit of analysis.
// Treat a Snapshot as read-only once constructed; the analyzer never mutates it.
type Snapshot struct {
	Participants []Participant `json:"participants"`
	Assignments  []Assignment  `json:"assignments"`
}

// Validate checks structural integrity before analysis: unique participant and
// assignment ids, and every assignment referencing a known participant.
func (s *Snapshot) Validate() error {
	roster := make(map[string]struct{}, len(s.Participants))
	for _, p := range s.Participants {
		if p.ID == "" {
			return fmt.Errorf("%w: participant with empty id", ErrInvalidSnapshot)
		}
		if _, dup := roster[p.ID]; dup {
			return fmt.Errorf("%w: duplicate participant id %q", ErrInvalidSnapshot, p.ID)
		}
		roster[p.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(s.Assignments))
	for _, a := range s.Assignments {
		if a.ID == "" {
			return fmt.Errorf("%w: assignment with empty id", ErrInvalidSnapshot)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate assignment id %q", ErrInvalidSnapshot, a.ID)
		}
		seen[a.ID] = struct{}{}
		if _, ok := roster[a.ParticipantID]; !ok {
			return fmt.Errorf("%w: assignment %q references unknown participant %q",
				ErrInvalidSnapshot, a.ID, a.ParticipantID)
		}
	}

	return nil
}

// ByParticipant groups assignments by owning participant id.
func (s *Snapshot) ByParticipant() map[string][]Assignment {
	owned := make(map[string][]Assignment, len(s.Participants))
	for _, a := range s.Assignments {
		owned[a.ParticipantID] = append(owned[a.ParticipantID], a)
	}
	return owned
}

// ParticipantByID returns the roster entry for id, if present.
func (s *Snapshot) ParticipantByID(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Fingerprint returns a content hash of the snapshot, stable under input
// ordering. Callers use it together with a strategy name to key memoized
// reports.
func (s *Snapshot) Fingerprint() string {
	participants := make([]Participant, len(s.Participants))
	copy(participants, s.Participants)
	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })

	assignments := make([]Assignment, len(s.Assignments))
	copy(assignments, s.Assignments)
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })

	h := sha256.New()
	for _, p := range participants {
		fmt.Fprintf(h, "p\x00%s\x00%s\x00", p.ID, p.Name)
	}
	for _, a := range assignments {
		fmt.Fprintf(h, "a\x00%s\x00%s\x00%s\x00%s\x00", a.ID, a.ParticipantID, a.Slot, a.Workload)
	}
	return hex.EncodeToString(h.Sum(nil))
}
