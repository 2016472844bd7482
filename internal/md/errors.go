package md

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a physical or geometric parameter
	// violates its precondition (negative mass, degenerate box, ...).
	ErrInvalidParameter = errors.New("md: invalid parameter")

	// ErrUnstable indicates the simulation became numerically unstable
	// (non-finite position, velocity or energy).
	ErrUnstable = errors.New("md: numerical instability (NaN or Inf detected)")

	// ErrCompleted indicates a run was started on an engine that already
	// finished.
	ErrCompleted = errors.New("md: engine already ran")
)

func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// StepError wraps an error with the step context it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
