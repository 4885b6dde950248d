package enumerate

// Option applies a configuration option to the Enumerator.
type Option func(*Enumerator)

// WithEpsilon sets the minimum utility gain for a swap to count as
// beneficial, suppressing floating-point noise.
func WithEpsilon(epsilon float64) Option {
	return func(e *Enumerator) {
		if epsilon >= 0 {
			e.epsilon = epsilon
		}
	}
}

// WithParallelism sets the number of concurrent per-participant searches.
func WithParallelism(workers int) Option {
	return func(e *Enumerator) {
		if workers > 0 {
			e.parallelism = workers
		}
	}
}

// WithDetailCap bounds the retained swap detail list per participant.
// Zero or negative means unbounded. The cap never affects the deviation
// counts unless approximate counts are explicitly enabled.
func WithDetailCap(cap int) Option {
	return func(e *Enumerator) {
		e.detailCap = cap
	}
}

// WithApproximateCounts allows enumeration to stop early once a participant's
// detail cap is reached. Counts then become lower bounds; callers trade
// exactness of the distance metric for speed and must opt in explicitly.
func WithApproximateCounts(approximate bool) Option {
	return func(e *Enumerator) {
		e.approximate = approximate
	}
}
