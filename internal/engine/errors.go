package engine

import "errors"

// Domain errors for system construction and stepping.
var (
	// ErrInvalidRecord indicates a malformed initial-condition record
	// (missing field, wrong arity, zero mass).
	ErrInvalidRecord = errors.New("engine: invalid initial-condition record")

	// ErrCoincidentBodies indicates two distinct bodies at the same position
	// at force-assembly time.
	ErrCoincidentBodies = errors.New("engine: two bodies occupy the same position")

	// ErrBadLimit indicates a non-positive step limit.
	ErrBadLimit = errors.New("engine: step limit must be positive")

	// ErrBadStep indicates a non-positive step size.
	ErrBadStep = errors.New("engine: step size must be positive")

	// ErrEndOfSequence signals normal exhaustion of a StepSequence. Like
	// io.EOF it is expected, not a failure.
	ErrEndOfSequence = errors.New("engine: step sequence exhausted")
)
