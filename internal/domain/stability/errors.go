package stability

import "errors"

// Sentinel kinds for calibration errors.
var (
	ErrInsufficientHistory = errors.New("not enough calibration history")
	ErrDegenerateHistory   = errors.New("degenerate calibration history")
)
