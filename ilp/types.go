package ilp

import (
	"context"
	"math"
	"time"
)

// VarID indexes a variable within its Model (0..NumVars-1).
type VarID int

// Domain is the value domain of a variable.
type Domain int

const (
	// Binary variables take values in {0, 1}.
	Binary Domain = iota
	// Integer variables take integral values within [Lower, Upper].
	Integer
)

// String returns the lower-case domain name.
func (d Domain) String() string {
	switch d {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// Var is a decision variable. Upper may be +Inf for integer variables.
type Var struct {
	Name   string
	Domain Domain
	Lower  float64
	Upper  float64
}

// Term is coef·var.
type Term struct {
	Var  VarID
	Coef float64
}

// Expr is a linear expression Σ coef·var (no constant part).
type Expr []Term

// Sum returns the expression with coefficient 1 on every listed variable.
func Sum(vars ...VarID) Expr {
	e := make(Expr, len(vars))
	for i, v := range vars {
		e[i] = Term{Var: v, Coef: 1}
	}

	return e
}

// Value evaluates e under the assignment values (indexed by VarID).
func (e Expr) Value(values []float64) float64 {
	var s float64
	for _, t := range e {
		s += t.Coef * values[t.Var]
	}

	return s
}

// Sense is the relation of a constraint.
type Sense int

const (
	// LessEq is expr ≤ rhs.
	LessEq Sense = iota
	// GreaterEq is expr ≥ rhs.
	GreaterEq
	// Equal is expr = rhs.
	Equal
)

// String returns the LP-format operator.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Constraint is Expr Sense RHS.
type Constraint struct {
	Name  string
	Expr  Expr
	Sense Sense
	RHS   float64
}

// Satisfied reports whether the constraint holds under values within tol.
func (c Constraint) Satisfied(values []float64, tol float64) bool {
	lhs := c.Expr.Value(values)
	switch c.Sense {
	case LessEq:
		return lhs <= c.RHS+tol
	case GreaterEq:
		return lhs >= c.RHS-tol
	default:
		return math.Abs(lhs-c.RHS) <= tol
	}
}

// Direction is the optimisation direction.
type Direction int

const (
	// Minimize the objective.
	Minimize Direction = iota
	// Maximize the objective.
	Maximize
)

// String returns "minimize" or "maximize".
func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}

	return "minimize"
}

// Objective is the linear function to optimise.
type Objective struct {
	Direction Direction
	Expr      Expr
}

// Better reports whether a is strictly better than b by more than eps.
func (o Objective) Better(a, b, eps float64) bool {
	if o.Direction == Maximize {
		return a > b+eps
	}

	return a < b-eps
}

// Status is the outcome of a completed solve.
type Status int

const (
	// Unknown is the zero value; engines never report it for a finished solve.
	Unknown Status = iota
	// Optimal means Values hold a proven optimal assignment.
	Optimal
	// Infeasible means no assignment satisfies the constraints.
	Infeasible
	// Unbounded means the objective can be improved without limit.
	Unbounded
	// TimedOut means a time or node limit stopped the search before proof.
	TimedOut
)

// String returns the snake-case status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Solution is an engine's answer. Values and Objective are meaningful only
// when Status == Optimal.
type Solution struct {
	Status    Status
	Values    []float64 // indexed by VarID
	Objective float64
	Nodes     int64         // search nodes explored (engine-specific)
	Elapsed   time.Duration // wall time spent inside the engine
}

// Value returns the value of v, or 0 when Values is too short.
func (s Solution) Value(v VarID) float64 {
	if int(v) < 0 || int(v) >= len(s.Values) {
		return 0
	}

	return s.Values[v]
}

// Solver is an optimisation engine.
//
// Solve blocks until the engine finishes. A non-nil error means the engine
// itself failed; every completed search, including infeasible or timed-out
// ones, returns a nil error and the outcome in Solution.Status.
type Solver interface {
	Solve(ctx context.Context, m *Model) (Solution, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, m *Model) (Solution, error)

// Solve calls f(ctx, m).
func (f SolverFunc) Solve(ctx context.Context, m *Model) (Solution, error) { return f(ctx, m) }
