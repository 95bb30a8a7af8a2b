package fsmkit

import "errors"

// Construction errors. "No transition found" and "guard rejected" are not
// errors at all: both are ordinary false returns from Fire.
var (
	ErrNilInitialState   = errors.New("fsmkit: initial state cannot be nil")
	ErrInvalidTransition = errors.New("fsmkit: transition from, to, and event cannot be nil")
	ErrInvalidHook       = errors.New("fsmkit: hook state cannot be nil")
)
