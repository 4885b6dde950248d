package app

import (
	"time"

	"github.com/okian/keel/internal/adapters/cache"
	"github.com/okian/keel/internal/domain/stability"
	"github.com/okian/keel/pkg/logger"
)

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithEpsilon sets the beneficial swap tolerance.
func WithEpsilon(epsilon float64) Option {
	return func(a *Analyzer) {
		if epsilon > 0 {
			a.epsilon = epsilon
		}
	}
}

// WithThresholds sets the stability tier boundaries.
func WithThresholds(t stability.Thresholds) Option {
	return func(a *Analyzer) {
		if t.Valid() {
			a.thresholds = t
		}
	}
}

// WithPrediction sets the swap-volume prediction constants.
func WithPrediction(p stability.Prediction) Option {
	return func(a *Analyzer) {
		a.prediction = p
	}
}

// WithTopK bounds the ranked instability list in the report.
func WithTopK(k int) Option {
	return func(a *Analyzer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithNotableThreshold sets the per-participant deviation count that earns a
// dedicated warning.
func WithNotableThreshold(threshold int) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.notable = threshold
		}
	}
}

// WithParallelism sets the number of concurrent enumeration workers.
func WithParallelism(workers int) Option {
	return func(a *Analyzer) {
		if workers > 0 {
			a.parallelism = workers
		}
	}
}

// WithSwapCap bounds the retained swap detail list per participant. When
// approximate is true the enumerator also stops counting at the cap, which
// trades exact deviation counts for speed; the report flags that trade-off.
func WithSwapCap(cap int, approximate bool) Option {
	return func(a *Analyzer) {
		a.detailCap = cap
		a.approximate = approximate
	}
}

// WithCache supplies a caller-owned report memo store.
func WithCache(store cache.Store) Option {
	return func(a *Analyzer) {
		a.cache = store
	}
}

// WithLogger sets a custom logger for the analyzer.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the report timestamp source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}
