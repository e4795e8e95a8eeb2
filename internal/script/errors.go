package script

import (
	"errors"
	"fmt"
)

// Sentinel errors for script loading and replay.
var (
	// ErrUnknownEvent is returned for a step whose event is not supported.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrOutOfOrder is returned when a step happens before its predecessor.
	ErrOutOfOrder = errors.New("step out of order")

	// ErrMissingTarget is returned when an element event has no target.
	ErrMissingTarget = errors.New("step requires a target")

	// ErrTargetNotFound is returned when a target selector matches nothing.
	ErrTargetNotFound = errors.New("target not found")
)

// StepError wraps an error with the step it came from.
type StepError struct {
	// Index is the zero-based step index.
	Index int
	// Event is the step's event name.
	Event string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
