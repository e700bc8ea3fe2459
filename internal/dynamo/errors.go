package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidRadius indicates a non-positive or non-finite particle radius.
	ErrInvalidRadius = errors.New("dynamo: particle radius must be positive")

	// ErrInvalidRestitution indicates a restitution coefficient outside [0, 1].
	ErrInvalidRestitution = errors.New("dynamo: restitution must be within [0, 1]")

	// ErrNonFinite indicates a NaN or Inf input value.
	ErrNonFinite = errors.New("dynamo: non-finite value (NaN or Inf)")

	// ErrInvalidTimestep indicates a negative or non-finite frame time step.
	ErrInvalidTimestep = errors.New("dynamo: invalid time step")

	// ErrInvalidViewport indicates a viewport with non-positive extent.
	ErrInvalidViewport = errors.New("dynamo: viewport must have positive width and height")

	// ErrUnknownComponent indicates a lookup for an unregistered integrator,
	// resolver, preset or colour mode.
	ErrUnknownComponent = errors.New("dynamo: unknown component")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
