package domain

import "errors"

// Domain errors for light-curve construction and cleaning.
var (
	// ErrInvalidInput is returned when a light curve is constructed from
	// empty or mismatched-length sequences.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFiniteSamples is returned when no finite samples survive
	// cleaning. A curve in this state must not be scored.
	ErrNoFiniteSamples = errors.New("no finite samples")
)
