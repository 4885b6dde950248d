package matrix

import "errors"

// Sentinel kinds for matrix construction errors.
var (
	ErrStrategyFailure = errors.New("utility strategy evaluation failed")
)
