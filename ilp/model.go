package ilp

import (
	"fmt"
	"math"
)

// Model is an immutable integer linear program. Accessors return copies so
// callers cannot mutate a model shared with an engine.
type Model struct {
	name string
	vars []Var
	cons []Constraint
	obj  Objective
}

// Stats summarises the size of a model.
type Stats struct {
	Vars        int
	Binary      int
	Integer     int
	Constraints int
	Nonzeros    int
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns variable v; ok is false when v is out of range.
func (m *Model) Var(v VarID) (Var, bool) {
	if v < 0 || int(v) >= len(m.vars) {
		return Var{}, false
	}

	return m.vars[v], true
}

// Vars returns a copy of all variables in VarID order.
func (m *Model) Vars() []Var {
	out := make([]Var, len(m.vars))
	copy(out, m.vars)

	return out
}

// Constraint returns constraint i (with a private copy of its expression).
func (m *Model) Constraint(i int) (Constraint, bool) {
	if i < 0 || i >= len(m.cons) {
		return Constraint{}, false
	}
	c := m.cons[i]
	c.Expr = append(Expr(nil), c.Expr...)

	return c, true
}

// Constraints returns deep copies of all constraints in insertion order.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.cons))
	for i, c := range m.cons {
		c.Expr = append(Expr(nil), c.Expr...)
		out[i] = c
	}

	return out
}

// Objective returns a copy of the objective.
func (m *Model) Objective() Objective {
	o := m.obj
	o.Expr = append(Expr(nil), o.Expr...)

	return o
}

// Stats counts variables by domain, constraints and non-zero coefficients.
func (m *Model) Stats() Stats {
	s := Stats{Vars: len(m.vars), Constraints: len(m.cons)}
	for _, v := range m.vars {
		if v.Domain == Binary {
			s.Binary++
		} else {
			s.Integer++
		}
	}
	for _, c := range m.cons {
		s.Nonzeros += len(c.Expr)
	}

	return s
}

// Evaluate returns the objective value of values.
func (m *Model) Evaluate(values []float64) (float64, error) {
	if len(values) != len(m.vars) {
		return 0, fmt.Errorf("%d values for %d vars: %w", len(values), len(m.vars), ErrValueCount)
	}

	return m.obj.Expr.Value(values), nil
}

// Check verifies bounds, integrality and every constraint within tol and
// returns the first violation wrapped in ErrViolated.
func (m *Model) Check(values []float64, tol float64) error {
	if len(values) != len(m.vars) {
		return fmt.Errorf("%d values for %d vars: %w", len(values), len(m.vars), ErrValueCount)
	}
	for i, v := range m.vars {
		x := values[i]
		if math.IsNaN(x) || x < v.Lower-tol || x > v.Upper+tol {
			return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrViolated, v.Name, x, v.Lower, v.Upper)
		}
		if math.Abs(x-math.Round(x)) > tol {
			return fmt.Errorf("%w: %s=%g not integral", ErrViolated, v.Name, x)
		}
	}
	for _, c := range m.cons {
		if !c.Satisfied(values, tol) {
			return fmt.Errorf("%w: %s: %g %s %g", ErrViolated, c.Name, c.Expr.Value(values), c.Sense, c.RHS)
		}
	}

	return nil
}
