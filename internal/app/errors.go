package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoSession    = errors.New("no groups generated yet")
	ErrStaleSession = errors.New("session is no longer current")
)
