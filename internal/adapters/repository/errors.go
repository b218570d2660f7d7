package repository

import "errors"

// Sentinel kinds for roster store errors.
var (
	ErrRosterFull = errors.New("roster is full")
)
