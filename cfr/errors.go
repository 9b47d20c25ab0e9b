package cfr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors identifying the SolverError variants of spec §7.
// Use errors.Is against these, or errors.Cause to unwrap the
// pkg/errors context added at the point the failure was detected.
var (
	// ErrInvalidGameState is returned when pre-flight validation of
	// the game state or config fails.
	ErrInvalidGameState = errors.New("invalid game state")

	// ErrEmptyRange is returned when the villain range has no combos
	// left after blocker removal.
	ErrEmptyRange = errors.New("villain range is empty after blocker removal")

	// ErrNoValidActions is returned when the action enumerator
	// returns zero legal actions for the decision point.
	ErrNoValidActions = errors.New("no valid actions at decision point")

	// ErrConvergenceFailure is returned when an internal numerical
	// invariant is violated (a non-finite regret or strategy value).
	ErrConvergenceFailure = errors.New("convergence failure")
)

// ConvergenceFailureError carries the iteration count and last
// convergence metric observed before a numerical invariant was
// violated. errors.Is(err, ErrConvergenceFailure) holds for values of
// this type.
type ConvergenceFailureError struct {
	Iterations uint32
	Metric     float64
	cause      error
}

func (e *ConvergenceFailureError) Error() string {
	return fmt.Sprintf("convergence failure after %d iterations (metric=%g): %v",
		e.Iterations, e.Metric, e.cause)
}

func (e *ConvergenceFailureError) Unwrap() error {
	return ErrConvergenceFailure
}

func (e *ConvergenceFailureError) Cause() error {
	return e.cause
}
