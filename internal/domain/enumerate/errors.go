package enumerate

import (
	"errors"
	"fmt"
)

// Sentinel kinds for enumeration errors.
var (
	// ErrCancelled reports a cooperative cancellation during enumeration.
	// No partial result accompanies it.
	ErrCancelled = errors.New("analysis cancelled")

	// ErrMissingScore reports a utility matrix gap; the matrix must cover
	// every (participant, assignment) pair of the snapshot it was built from.
	ErrMissingScore = errors.New("utility matrix missing score")
)

func wrapCancelled(cause error) error {
	return fmt.Errorf("%w: %v", ErrCancelled, cause)
}

func missingScoreError(participantID, assignmentID string) error {
	return fmt.Errorf("%w: participant %q assignment %q", ErrMissingScore, participantID, assignmentID)
}
