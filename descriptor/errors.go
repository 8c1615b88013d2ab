package descriptor

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tagcover/ilp"
)

// Sentinel errors.
var (
	// ErrInconsistentObjectiveParameters indicates a parameter set for a
	// mode that must leave it zero (e.g. a threshold in mode A).
	ErrInconsistentObjectiveParameters = errors.New("descriptor: inconsistent objective parameters")

	// ErrNegativeParameter indicates a negative budget, threshold or cap.
	ErrNegativeParameter = errors.New("descriptor: parameter must be >= 0")

	// ErrUnknownMode indicates a Mode outside A, B, C.
	ErrUnknownMode = errors.New("descriptor: unknown mode")

	// ErrEmptyModel indicates n = 0, N = 0 or K = 0.
	ErrEmptyModel = errors.New("descriptor: empty model (no items, tags or clusters)")

	// ErrDimensionMismatch indicates that the matrix, tag names and
	// partition disagree on n or N.
	ErrDimensionMismatch = errors.New("descriptor: dimension mismatch")

	// ErrMalformedSolution indicates an optimal solution whose value vector
	// does not fit the formulation.
	ErrMalformedSolution = errors.New("descriptor: malformed solution")

	// ErrNoSolutionFound is matched by every *NoSolutionError.
	ErrNoSolutionFound = errors.New("descriptor: no solution found")
)

// NoSolutionError reports a completed solve that did not end Optimal:
// the engine ran fine, but there is no descriptor data to decode.
type NoSolutionError struct {
	Status ilp.Status
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("descriptor: no solution found (status %s)", e.Status)
}

// Is lets errors.Is(err, ErrNoSolutionFound) succeed.
func (e *NoSolutionError) Is(target error) bool { return target == ErrNoSolutionFound }
