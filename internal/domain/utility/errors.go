package utility

import "errors"

// Sentinel kinds for strategy errors. These allow errors.Is/As from callers.
var (
	ErrNoProfile = errors.New("no preference profile for participant")
)
