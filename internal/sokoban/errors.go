package sokoban

import (
	"errors"
	"fmt"
)

// Planning failures are ordinary result values: callers can retry with other
// parameters or fall back to manual play. None of them are fatal.
var (
	// ErrNoPath is returned when the requested cell is unreachable under the
	// current obstacles.
	ErrNoPath = errors.New("sokoban: no path")

	// ErrNoSolution is returned when a planner exhausted its search space
	// without reaching the requested configuration.
	ErrNoSolution = errors.New("sokoban: no solution")

	// ErrCancelled is returned when the solver was stopped by the caller
	// before the search space was exhausted. Unlike ErrNoSolution it means
	// the search was inconclusive.
	ErrCancelled = errors.New("sokoban: cancelled")
)

// InvalidRequestError reports malformed input to a planner contract, such as
// an out-of-bounds destination or a box argument that holds no box. It is
// detected eagerly at the start of each call, never silently coerced.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "sokoban: invalid request: " + e.Reason
}

func invalidRequestf(format string, args ...any) error {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}
