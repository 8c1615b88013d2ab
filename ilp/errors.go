package ilp

import "errors"

// Sentinel errors for model construction and checking.
var (
	// ErrUnknownVar indicates a term referring to a variable id the model
	// does not define.
	ErrUnknownVar = errors.New("ilp: unknown variable")

	// ErrBadCoefficient indicates a NaN or infinite coefficient or rhs.
	ErrBadCoefficient = errors.New("ilp: coefficient must be finite")

	// ErrBadBounds indicates lower > upper, NaN bounds or a -Inf lower bound.
	ErrBadBounds = errors.New("ilp: invalid variable bounds")

	// ErrDuplicateName indicates two variables or two constraints sharing a name.
	ErrDuplicateName = errors.New("ilp: duplicate name")

	// ErrEmptyName indicates a variable or constraint without a name.
	ErrEmptyName = errors.New("ilp: empty name")

	// ErrNoObjective indicates Build was called before SetObjective.
	ErrNoObjective = errors.New("ilp: objective not set")

	// ErrNoVars indicates a model without variables.
	ErrNoVars = errors.New("ilp: model has no variables")

	// ErrBuilderSealed indicates use of a Builder after Build.
	ErrBuilderSealed = errors.New("ilp: builder already built")

	// ErrValueCount indicates an assignment whose length differs from NumVars.
	ErrValueCount = errors.New("ilp: assignment length mismatch")

	// ErrViolated indicates an assignment that breaks a bound, integrality
	// or a constraint.
	ErrViolated = errors.New("ilp: assignment violates the model")
)
