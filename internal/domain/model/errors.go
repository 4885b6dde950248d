package model

import "errors"

// Sentinel error kinds for snapshot validation. Callers match with errors.Is.
var (
	ErrInvalidSnapshot = errors.New("invalid schedule snapshot")
)
