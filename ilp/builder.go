package ilp

import (
	"fmt"
	"math"
)

// Builder accumulates variables, constraints and an objective, then hands
// out an immutable Model. A Builder is single-use and not goroutine-safe.
type Builder struct {
	name   string
	vars   []Var
	cons   []Constraint
	obj    Objective
	hasObj bool
	names  map[string]struct{}
	cnames map[string]struct{}
	err    error
	sealed bool
}

// NewBuilder returns an empty Builder for a model called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		names:  make(map[string]struct{}),
		cnames: make(map[string]struct{}),
	}
}

// fail records the first error.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error { return b.err }

// NumVars returns the number of variables added so far.
func (b *Builder) NumVars() int { return len(b.vars) }

// addVar appends v after validating its name and bounds.
func (b *Builder) addVar(v Var) VarID {
	if b.sealed {
		b.fail(ErrBuilderSealed)
	}
	switch {
	case v.Name == "":
		b.fail(fmt.Errorf("variable %d: %w", len(b.vars), ErrEmptyName))
	case math.IsNaN(v.Lower) || math.IsNaN(v.Upper) || math.IsInf(v.Lower, 0) || v.Lower > v.Upper:
		b.fail(fmt.Errorf("variable %q [%g, %g]: %w", v.Name, v.Lower, v.Upper, ErrBadBounds))
	}
	if _, dup := b.names[v.Name]; dup {
		b.fail(fmt.Errorf("variable %q: %w", v.Name, ErrDuplicateName))
	}
	b.names[v.Name] = struct{}{}
	b.vars = append(b.vars, v)

	return VarID(len(b.vars) - 1)
}

// AddBinary adds a {0,1} variable.
func (b *Builder) AddBinary(name string) VarID {
	return b.addVar(Var{Name: name, Domain: Binary, Lower: 0, Upper: 1})
}

// AddInteger adds an integer variable with bounds [lo, hi]; hi may be +Inf.
func (b *Builder) AddInteger(name string, lo, hi float64) VarID {
	return b.addVar(Var{Name: name, Domain: Integer, Lower: lo, Upper: hi})
}

// AddNonNegInteger adds an integer variable in [0, +Inf).
func (b *Builder) AddNonNegInteger(name string) VarID {
	return b.AddInteger(name, 0, math.Inf(1))
}

// normalize validates e and merges repeated variables, dropping zero
// coefficients. Term order follows first appearance.
func (b *Builder) normalize(owner string, e Expr) Expr {
	var (
		pos = make(map[VarID]int, len(e))
		out = make(Expr, 0, len(e))
	)
	for _, t := range e {
		if t.Var < 0 || int(t.Var) >= len(b.vars) {
			b.fail(fmt.Errorf("%s: var %d: %w", owner, t.Var, ErrUnknownVar))
			continue
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			b.fail(fmt.Errorf("%s: var %q: %w", owner, b.vars[t.Var].Name, ErrBadCoefficient))
			continue
		}
		if p, ok := pos[t.Var]; ok {
			out[p].Coef += t.Coef
			continue
		}
		pos[t.Var] = len(out)
		out = append(out, t)
	}

	// Compact away terms that cancelled to zero.
	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}

	return kept
}

// AddConstraint appends expr sense rhs under a unique name.
func (b *Builder) AddConstraint(name string, expr Expr, sense Sense, rhs float64) {
	if b.sealed {
		b.fail(ErrBuilderSealed)
	}
	if name == "" {
		b.fail(fmt.Errorf("constraint %d: %w", len(b.cons), ErrEmptyName))
	}
	if _, dup := b.cnames[name]; dup {
		b.fail(fmt.Errorf("constraint %q: %w", name, ErrDuplicateName))
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		b.fail(fmt.Errorf("constraint %q rhs: %w", name, ErrBadCoefficient))
	}
	b.cnames[name] = struct{}{}
	b.cons = append(b.cons, Constraint{Name: name, Expr: b.normalize(name, expr), Sense: sense, RHS: rhs})
}

// SetObjective sets (or replaces) the objective.
func (b *Builder) SetObjective(dir Direction, expr Expr) {
	if b.sealed {
		b.fail(ErrBuilderSealed)
	}
	b.obj = Objective{Direction: dir, Expr: b.normalize("objective", expr)}
	b.hasObj = true
}

// Build seals the builder and returns the model, or the first error
// recorded by any previous call.
func (b *Builder) Build() (*Model, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	b.sealed = true
	if b.err != nil {
		return nil, b.err
	}
	if len(b.vars) == 0 {
		return nil, ErrNoVars
	}
	if !b.hasObj {
		return nil, ErrNoObjective
	}

	return &Model{name: b.name, vars: b.vars, cons: b.cons, obj: b.obj}, nil
}
