package stability

import (
	"fmt"
)

// Minimum observations for a meaningful least-squares fit.
const minObservations = 2

// Observation is one historical calibration point: the measured distance of a
// published schedule and the swap requests actually received for it.
type Observation struct {
	Distance         float64 `json:"distance"`
	SwapRequests     int     `json:"swap_requests"`
	TotalAssignments int     `json:"total_assignments"`
}

// Calibration is the result of an offline refit of the prediction constants.
type Calibration struct {
	Prediction

	// RSquared is the fraction of variance in observed swap rates explained
	// by the fitted line, reported for transparency.
	RSquared float64

	// Samples is the number of observations used.
	Samples int
}

// Calibrate fits predicted = baseline_rate + pressure_coefficient * distance
// by ordinary least squares over assignment-normalized swap rates. It is an
// offline operation over historical records and is never consulted during an
// analysis call.
func Calibrate(history []Observation) (Calibration, error) {
	var xs, ys []float64
	for _, obs := range history {
		if obs.TotalAssignments <= 0 {
			continue
		}
		xs = append(xs, obs.Distance)
		ys = append(ys, float64(obs.SwapRequests)/float64(obs.TotalAssignments))
	}

	n := len(xs)
	if n < minObservations {
		return Calibration{}, fmt.Errorf("%w: %d usable observations, need at least %d",
			ErrInsufficientHistory, n, minObservations)
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXX, ssXY, ssYY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		ssXX += dx * dx
		ssXY += dx * dy
		ssYY += dy * dy
	}
	if ssXX == 0 {
		return Calibration{}, fmt.Errorf("%w: all observations share one distance value",
			ErrDegenerateHistory)
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	// R^2 via explained variance; a flat response is a perfect fit of a flat line.
	rSquared := 1.0
	if ssYY > 0 {
		var ssRes float64
		for i := 0; i < n; i++ {
			resid := ys[i] - (intercept + slope*xs[i])
			ssRes += resid * resid
		}
		rSquared = 1 - ssRes/ssYY
	}

	return Calibration{
		Prediction: Prediction{
			BaselineRate:        intercept,
			PressureCoefficient: slope,
		},
		RSquared: rSquared,
		Samples:  n,
	}, nil
}
