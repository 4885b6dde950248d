// Package stability reduces enumeration results to the Nash distance, a
// discrete stability tier, and a predicted swap-request volume.
package stability

import (
	"math"
)

// Tier is the discrete stability classification of a schedule.
type Tier string

// Stability tiers, from most to least stable.
const (
	TierStable   Tier = "STABLE"
	TierMarginal Tier = "MARGINAL"
	TierUnstable Tier = "UNSTABLE"
	TierCritical Tier = "CRITICAL"
)

// Default tier boundaries and prediction constants. These are calibration
// parameters, not fixed truths; deployments refit them against observed swap
// volume (see Calibrate).
const (
	defaultStableBelow   = 0.05
	defaultMarginalBelow = 0.15
	defaultUnstableBelow = 0.30

	defaultBaselineRate        = 0.10
	defaultPressureCoefficient = 0.50
)

// Distance computes the Nash distance: the fraction of assignments for which
// some participant has a beneficial unilateral swap, capped at 1. An empty
// schedule is vacuously at equilibrium.
func Distance(totalDeviations, totalAssignments int) float64 {
	if totalAssignments <= 0 {
		return 0.0
	}
	return math.Min(1.0, float64(totalDeviations)/float64(totalAssignments))
}

// Thresholds holds the tier boundaries. Each bound is exclusive for the tier
// below it: distance < Stable is STABLE, Stable <= distance < Marginal is
// MARGINAL, and so on; everything at or above Unstable is CRITICAL.
type Thresholds struct {
	Stable   float64
	Marginal float64
	Unstable float64
}

// DefaultThresholds returns the calibrated default tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Stable:   defaultStableBelow,
		Marginal: defaultMarginalBelow,
		Unstable: defaultUnstableBelow,
	}
}

// Valid reports whether the boundaries are positive and strictly ascending.
func (t Thresholds) Valid() bool {
	return t.Stable > 0 && t.Stable < t.Marginal && t.Marginal < t.Unstable
}

// Classify maps a distance to its tier, first match in ascending order wins.
func (t Thresholds) Classify(distance float64) Tier {
	switch {
	case distance < t.Stable:
		return TierStable
	case distance < t.Marginal:
		return TierMarginal
	case distance < t.Unstable:
		return TierUnstable
	default:
		return TierCritical
	}
}

// IsStable reports whether the distance is strictly below the stable bound.
func (t Thresholds) IsStable(distance float64) bool {
	return distance < t.Stable
}

// Prediction holds the calibrated swap-volume model: the expected
// swap-request rate per assignment is baseline_rate + distance * pressure.
type Prediction struct {
	BaselineRate        float64
	PressureCoefficient float64
}

// DefaultPrediction returns the regression-fitted default constants.
func DefaultPrediction() Prediction {
	return Prediction{
		BaselineRate:        defaultBaselineRate,
		PressureCoefficient: defaultPressureCoefficient,
	}
}

// PredictSwaps estimates the post-publication swap-request count for a
// schedule of the given size at the given distance.
func (p Prediction) PredictSwaps(distance float64, totalAssignments int) int {
	if totalAssignments <= 0 {
		return 0
	}
	rate := p.BaselineRate + distance*p.PressureCoefficient
	predicted := math.Round(float64(totalAssignments) * rate)
	if predicted < 0 {
		return 0
	}
	return int(predicted)
}
