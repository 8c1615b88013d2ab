// SPDX-License-Identifier: MIT

// Package pbsat - ilp.Solver backed by gophersat's pseudo-boolean optimiser.
//
// Engine.Solve translates an ilp.Model into weighted cardinality
// constraints over boolean literals and minimises a weighted literal sum.
//
// Rationale (succinct):
//  1. Binary variables map to one literal each. Integer variables are
//     binary-expanded, x = lo + Σ 2^b·s_b, with an extra row x ≤ hi.
//     Infinite upper bounds are first tightened by one-row interval
//     reasoning; variables that stay unbounded are rejected.
//  2. Rows are rewritten to Σ w·l ≥ n with positive weights only:
//     ≤ rows are negated, negative weights flip their literal and move
//     their weight into n. Equalities become two rows.
//  3. The objective becomes a minimised cost over literals with the same
//     sign handling; the constant part is dropped and the reported
//     objective is recomputed on the decoded assignment.
//  4. Cancellation closes gophersat's stop channel; the final assignment
//     is re-checked against the original model.
//
// Complexity:
//   - Literals: Σ over variables of max(1, ⌈log2(hi−lo+1)⌉).
//   - Rows: one per ≤/≥ constraint, two per equality, one per expanded
//     integer. Search cost is that of the underlying CDCL solver.

package pbsat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/crillab/gophersat/solver"

	"github.com/katalvlaran/tagcover/ilp"
)

// Sentinel errors returned by the adapter.
var (
	// ErrNilModel indicates a nil *ilp.Model.
	ErrNilModel = errors.New("pbsat: nil model")

	// ErrNonIntegral indicates a coefficient, rhs or bound that is not an
	// integer; pseudo-boolean weights are integral.
	ErrNonIntegral = errors.New("pbsat: non-integral coefficient")

	// ErrUnboundedDomain indicates an integer variable without a finite
	// upper bound after tightening.
	ErrUnboundedDomain = errors.New("pbsat: variable has no finite upper bound")

	// ErrWeightOverflow indicates an expanded weight beyond maxWeight.
	ErrWeightOverflow = errors.New("pbsat: weight out of range")

	// ErrIncumbentRejected indicates a decoded assignment that fails the
	// model check, i.e. an encoding fault.
	ErrIncumbentRejected = errors.New("pbsat: assignment failed verification")
)

// maxWeight keeps every weight sum far from int overflow.
const maxWeight = 1 << 40

// Options configures the engine.
type Options struct {
	// TimeLimit is a wall-clock budget; 0 disables it.
	TimeLimit time.Duration
}

// Engine is an ilp.Solver. It holds only options and is safe for
// concurrent use.
type Engine struct {
	opts Options
}

// New returns an Engine; a negative TimeLimit is treated as none.
func New(opts Options) *Engine {
	if opts.TimeLimit < 0 {
		opts.TimeLimit = 0
	}

	return &Engine{opts: opts}
}

// Solve encodes m, runs the optimiser and decodes the best assignment.
//
// Status mapping: optimum proven → Optimal; no model → Infeasible;
// TimeLimit or ctx deadline → TimedOut. ctx cancellation is returned as
// an error. Nodes is always 0; gophersat does not report a node count.
func (e *Engine) Solve(ctx context.Context, m *ilp.Model) (ilp.Solution, error) {
	if m == nil {
		return ilp.Solution{}, ErrNilModel
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if e.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.TimeLimit)
		defer cancel()
	}
	start := time.Now()

	sol, err := e.solve(ctx, m)
	sol.Elapsed = time.Since(start)

	return sol, err
}

func (e *Engine) solve(ctx context.Context, m *ilp.Model) (ilp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return stopped(err)
	}

	enc, err := encode(m)
	if err != nil {
		return ilp.Solution{}, err
	}
	if enc.infeasible {
		return ilp.Solution{Status: ilp.Infeasible}, nil
	}

	var model []bool
	if enc.nLits > 0 {
		status, res := enc.run(ctx)
		if err := ctx.Err(); err != nil {
			return stopped(err)
		}
		switch status {
		case solver.Unsat:
			return ilp.Solution{Status: ilp.Infeasible}, nil
		case solver.Sat:
			model = res
		default:
			return ilp.Solution{Status: ilp.TimedOut}, nil
		}
	}
	values := enc.decode(model)
	if err := m.Check(values, 1e-6); err != nil {
		return ilp.Solution{}, fmt.Errorf("%w: %w", ErrIncumbentRejected, err)
	}
	obj, err := m.Evaluate(values)
	if err != nil {
		return ilp.Solution{}, err
	}

	return ilp.Solution{Status: ilp.Optimal, Values: values, Objective: obj}, nil
}

// stopped maps a done context to TimedOut (deadline) or an error.
func stopped(err error) (ilp.Solution, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		return ilp.Solution{Status: ilp.TimedOut}, nil
	}

	return ilp.Solution{}, err
}

// run hands the encoding to gophersat. Optimal is used with and without
// a cost function; its Result carries the model indexed by literal − 1.
func (enc *encoding) run(ctx context.Context) (solver.Status, []bool) {
	pb := solver.ParsePBConstrs(enc.rows)
	if len(enc.costLits) > 0 {
		pb.SetCostFunc(enc.costLits, enc.costWeights)
	}
	s := solver.New(pb)

	stop := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			close(stop)
		case <-done:
		}
	}()
	res := s.Optimal(nil, stop)

	return res.Status, res.Model
}

// column is the literal expansion of one model variable:
// x = lo + Σ_b 2^b · lit[first+b].
type column struct {
	lo    int
	first int // 1-based index of the first literal
	width int // number of literals (0 for a fixed variable)
}

// encoding is a model translated to pseudo-boolean form.
type encoding struct {
	cols        []column
	nLits       int
	rows        []solver.PBConstr
	costLits    []solver.Lit
	costWeights []int
	infeasible  bool
}

func encode(m *ilp.Model) (*encoding, error) {
	vars := m.Vars()
	cons := m.Constraints()

	lo, hi, err := bounds(vars, cons)
	if err != nil {
		return nil, err
	}

	enc := &encoding{cols: make([]column, len(vars))}
	for v := range vars {
		span := hi[v] - lo[v]
		if span < 0 {
			enc.infeasible = true
			return enc, nil
		}
		width := bits.Len64(uint64(span))
		enc.cols[v] = column{lo: lo[v], first: enc.nLits + 1, width: width}
		enc.nLits += width
	}
	// Declare every literal, so the solver model covers all of them.
	for l := 1; l <= enc.nLits; l++ {
		enc.rows = append(enc.rows, solver.GtEq([]int{l}, []int{1}, 0))
	}

	// x ≤ hi for expanded variables whose span is not a power of two minus one.
	for v, c := range enc.cols {
		span := hi[v] - lo[v]
		if c.width > 1 && span != 1<<c.width-1 {
			lits, ws := c.terms(1)
			if err := enc.addGE(lits, ws, -int64(span), true); err != nil {
				return nil, err
			}
		}
	}

	for _, c := range cons {
		rhs, err := integral(c.RHS)
		if err != nil {
			return nil, fmt.Errorf("%w: constraint %s rhs %g", err, c.Name, c.RHS)
		}
		lits, ws, konst, err := enc.expand(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Name, err)
		}
		n := rhs - konst
		switch c.Sense {
		case ilp.GreaterEq:
			err = enc.addGE(lits, ws, n, false)
		case ilp.LessEq:
			err = enc.addGE(lits, ws, -n, true)
		default:
			if err = enc.addGE(lits, ws, n, false); err == nil {
				err = enc.addGE(lits, ws, -n, true)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Name, err)
		}
		if enc.infeasible {
			return enc, nil
		}
	}

	obj := m.Objective()
	sign := int64(1)
	if obj.Direction == ilp.Maximize {
		sign = -1
	}
	lits, ws, _, err := enc.expand(obj.Expr)
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	for t, l := range lits {
		w := sign * ws[t]
		if w < 0 {
			l, w = -l, -w
		}
		enc.costLits = append(enc.costLits, solver.IntToLit(int32(l)))
		enc.costWeights = append(enc.costWeights, int(w))
	}

	return enc, nil
}

// terms returns the literals of column c with weights scaled by a.
func (c column) terms(a int64) ([]int, []int64) {
	lits := make([]int, c.width)
	ws := make([]int64, c.width)
	for b := 0; b < c.width; b++ {
		lits[b] = c.first + b
		ws[b] = a << b
	}

	return lits, ws
}

// expand rewrites Σ a·x as Σ w·lit + konst.
func (enc *encoding) expand(e ilp.Expr) (lits []int, ws []int64, konst int64, err error) {
	for _, t := range e {
		a, err := integral(t.Coef)
		if err != nil {
			return nil, nil, 0, err
		}
		c := enc.cols[t.Var]
		konst += a * int64(c.lo)
		l, w := c.terms(a)
		for i := range w {
			if w[i] > maxWeight || w[i] < -maxWeight {
				return nil, nil, 0, ErrWeightOverflow
			}
		}
		lits = append(lits, l...)
		ws = append(ws, w...)
	}

	return lits, ws, konst, nil
}

// addGE appends Σ w·lit ≥ n (or, with negate, Σ −w·lit ≥ n). Weights are
// made positive by flipping literals; a row whose positive weights cannot
// reach n marks the encoding infeasible.
func (enc *encoding) addGE(lits []int, ws []int64, n int64, negate bool) error {
	var (
		outL = make([]int, 0, len(lits))
		outW = make([]int, 0, len(lits))
		sum  int64
	)
	for t, l := range lits {
		w := ws[t]
		if negate {
			w = -w
		}
		switch {
		case w == 0:
			continue
		case w < 0:
			l, w = -l, -w
			n += w
		}
		outL = append(outL, l)
		outW = append(outW, int(w))
		sum += w
	}
	if n > sum {
		enc.infeasible = true
		return nil
	}
	if n > maxWeight {
		return ErrWeightOverflow
	}
	if n <= 0 {
		return nil
	}
	enc.rows = append(enc.rows, solver.GtEq(outL, outW, int(n)))

	return nil
}

// decode maps a solver model (indexed by literal − 1) back to values.
func (enc *encoding) decode(model []bool) []float64 {
	values := make([]float64, len(enc.cols))
	for v, c := range enc.cols {
		x := int64(c.lo)
		for b := 0; b < c.width; b++ {
			if idx := c.first + b - 1; idx < len(model) && model[idx] {
				x += 1 << b
			}
		}
		values[v] = float64(x)
	}

	return values
}

func integral(x float64) (int64, error) {
	if x != math.Trunc(x) || math.Abs(x) > maxWeight {
		return 0, ErrNonIntegral
	}

	return int64(x), nil
}

// bounds returns integral [lo, hi] per variable. Infinite upper bounds are
// tightened from rows where every other variable is bounded:
// a·x ≤ b − minAct(rest) for a > 0 in a ≤ row.
func bounds(vars []ilp.Var, cons []ilp.Constraint) (lo, hi []int, err error) {
	var (
		n     = len(vars)
		loF   = make([]float64, n)
		hiF   = make([]float64, n)
		rows  []ilp.Constraint
		infCt int
	)
	for v, x := range vars {
		loF[v] = math.Ceil(x.Lower - 1e-9)
		hiF[v] = x.Upper
		if math.IsInf(hiF[v], 1) {
			infCt++
		} else {
			hiF[v] = math.Floor(hiF[v] + 1e-9)
		}
	}
	for _, c := range cons {
		switch c.Sense {
		case ilp.LessEq:
			rows = append(rows, c)
		case ilp.GreaterEq:
			rows = append(rows, negated(c))
		default:
			rows = append(rows, ilp.Constraint{Name: c.Name, Expr: c.Expr, Sense: ilp.LessEq, RHS: c.RHS}, negated(c))
		}
	}

	for changed := infCt > 0; changed; {
		changed = false
		for _, r := range rows {
			for t, term := range r.Expr {
				if term.Coef <= 0 || !math.IsInf(hiF[term.Var], 1) {
					continue
				}
				rest, ok := minActivity(r.Expr, t, loF, hiF)
				if !ok {
					continue
				}
				hiF[term.Var] = math.Floor((r.RHS-rest)/term.Coef + 1e-9)
				changed = true
			}
		}
	}

	lo, hi = make([]int, n), make([]int, n)
	for v := range vars {
		if math.IsInf(hiF[v], 1) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnboundedDomain, vars[v].Name)
		}
		if math.Abs(loF[v]) > maxWeight || math.Abs(hiF[v]) > maxWeight {
			return nil, nil, fmt.Errorf("%w: %s", ErrWeightOverflow, vars[v].Name)
		}
		lo[v], hi[v] = int(loF[v]), int(hiF[v])
	}

	return lo, hi, nil
}

func negated(c ilp.Constraint) ilp.Constraint {
	e := make(ilp.Expr, len(c.Expr))
	for i, t := range c.Expr {
		e[i] = ilp.Term{Var: t.Var, Coef: -t.Coef}
	}

	return ilp.Constraint{Name: c.Name, Expr: e, Sense: ilp.LessEq, RHS: -c.RHS}
}

// minActivity is Σ min(a·lo, a·hi) over e without term skip; ok is false
// when that minimum is −∞.
func minActivity(e ilp.Expr, skip int, lo, hi []float64) (float64, bool) {
	var s float64
	for t, term := range e {
		if t == skip {
			continue
		}
		if term.Coef > 0 {
			s += term.Coef * lo[term.Var]
			continue
		}
		if math.IsInf(hi[term.Var], 1) {
			return 0, false
		}
		s += term.Coef * hi[term.Var]
	}

	return s, true
}
