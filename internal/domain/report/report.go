// Package report defines the immutable stability report and its assembly.
package report

import (
	"time"

	"github.com/okian/keel/internal/domain/stability"
)

// InstabilityDetail is one ranked beneficial swap in the report. Field names
// mirror the JSON contract consumed by the publish gate, dashboards, and the
// swap recommender.
type InstabilityDetail struct {
	ParticipantID    string  `json:"participant_id"`
	ParticipantName  string  `json:"participant_name"`
	CurrentSlot      string  `json:"current_slot"`
	PreferredSlot    string  `json:"preferred_slot"`
	CounterpartyID   string  `json:"counterparty_id"`
	CounterpartyName string  `json:"counterparty_name"`
	UtilityGain      float64 `json:"utility_gain"`
}

// StabilityReport is the aggregate analysis result. Immutable once assembled;
// consumers read this structure only and never reach into engine internals.
type StabilityReport struct {
	AnalysisID            string              `json:"analysis_id"`
	NashDistance          float64             `json:"nash_distance"`
	IsStable              bool                `json:"is_stable"`
	StabilityLevel        stability.Tier      `json:"stability_level"`
	BeneficialDeviations  int                 `json:"beneficial_deviations"`
	TotalAssignments      int                 `json:"total_assignments"`
	PredictedSwapRequests int                 `json:"predicted_swap_requests"`
	TopInstabilities      []InstabilityDetail `json:"top_instabilities"`
	AnalysisTimestamp     time.Time           `json:"analysis_timestamp"`
	Warnings              []string            `json:"warnings"`
	Recommendations       []string            `json:"recommendations"`
}
