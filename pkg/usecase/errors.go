package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrSessionBusy is returned by callers that enforce single-flight
	// turn processing when a second submission arrives mid-turn.
	ErrSessionBusy = errors.New("session has a turn in flight")
)
