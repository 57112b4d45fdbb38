package engine

import "errors"

// Domain errors for engine operations.
var (
	// ErrNonPositiveMass indicates an attempt to add a body with mass <= 0.
	ErrNonPositiveMass = errors.New("engine: body mass must be positive")

	// ErrNonPositiveRadius indicates an attempt to add a body with radius <= 0.
	ErrNonPositiveRadius = errors.New("engine: body radius must be positive")
)
