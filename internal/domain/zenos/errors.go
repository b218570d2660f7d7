package zenos

import "errors"

// Sentinel kinds for grouping errors.
var (
	ErrTooFewCandidates   = errors.New("not enough candidates to form a group")
	ErrSuggestionNotFound = errors.New("swap suggestion not found")
	ErrInvalidSwap        = errors.New("invalid swap")
)
