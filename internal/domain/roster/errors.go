package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrNotEnoughParticipants = errors.New("not enough eligible participants")
	ErrInvalidPayload        = errors.New("invalid participant payload")
)
