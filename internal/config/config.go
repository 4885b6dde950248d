// Package config defines analyzer configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with calibrated defaults.
// - Layer optional file and environment overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration for the keel analyzer.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Epsilon is the minimum utility gain for a swap to count as beneficial.
	Epsilon float64 `koanf:"epsilon"`

	// Stability tier boundaries, half-open and ascending.
	StableBelow   float64 `koanf:"stable_below"`
	MarginalBelow float64 `koanf:"marginal_below"`
	UnstableBelow float64 `koanf:"unstable_below"`

	// Swap-volume prediction constants, refit periodically from history.
	BaselineRate        float64 `koanf:"baseline_rate"`
	PressureCoefficient float64 `koanf:"pressure_coefficient"`

	// TopK bounds the ranked instability list in the report.
	TopK int `koanf:"top_k"`

	// NotableDeviations is the per-participant swap count that earns a warning.
	NotableDeviations int `koanf:"notable_deviations"`

	// Parallelism sets the number of concurrent enumeration workers.
	Parallelism int `koanf:"parallelism"`

	// SwapDetailCap bounds retained swap details per participant (0 = unbounded).
	SwapDetailCap int `koanf:"swap_detail_cap"`

	// ApproximateCounts lets enumeration stop at the cap; counts become lower bounds.
	ApproximateCounts bool `koanf:"approximate_counts"`

	// CacheEntries bounds the report memo cache (0 disables caching).
	CacheEntries int `koanf:"cache_entries"`
}

// New creates a Config with calibrated defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Epsilon:             1e-6,
		StableBelow:         0.05,
		MarginalBelow:       0.15,
		UnstableBelow:       0.30,
		BaselineRate:        0.10,
		PressureCoefficient: 0.50,
		TopK:                20,
		NotableDeviations:   2,
		Parallelism:         runtime.NumCPU(),
		SwapDetailCap:       0,
		ApproximateCounts:   false,
		CacheEntries:        256,
	}
}
