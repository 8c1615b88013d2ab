// SPDX-License-Identifier: MIT

// Package bnb - exact depth-first branch and bound over bounded integer boxes.
//
// Engine.Solve searches every ilp.Model whose variables end up with finite
// bounds after root propagation. Binary and general integer variables are
// handled alike; equalities become two ≤ rows.
//
// Rationale (succinct):
//  1. Every row is normalised once to Σ a·x ≤ b and indexed by variable,
//     so propagation only revisits rows touching a changed bound.
//  2. Interval propagation: with minAct = Σ min(a·lo, a·hi), each term
//     gets a·x ≤ b − (minAct − min(a·lo, a·hi)); integral rounding with
//     eps keeps the box integral. An empty box prunes the node.
//  3. Bound changes go on a trail; backtracking pops to a mark instead
//     of copying boxes per node.
//  4. The objective is held in maximise orientation. The node bound is
//     Σ max(c·lo, c·hi), floored when every c is integral; with
//     Options.Relaxation the LP optimum of the box (gonum simplex) is
//     used as a second bound once an incumbent exists.
//  5. Branching: first unfixed variable in VarID order, split at the
//     midpoint, the side favoured by the objective first. Deterministic.
//  6. Soft limits: node budget every node; clock and context every
//     checkEvery nodes.
//
// Complexity:
//   - Worst case exponential in the number of variables (exact search).
//   - Per propagation step: O(row length); per node: O(n) bound and pick,
//     plus one simplex of size (rows + 2n) × n when Relaxation is on.
//   - Memory: O(nnz) for rows and occurrence lists, O(n) boxes, trail
//     bounded by the number of bound changes on the current path.

package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/tagcover/ilp"
)

// Engine is a reusable branch-and-bound ilp.Solver. An Engine holds only
// options, so one value may serve concurrent Solve calls.
type Engine struct {
	opts Options
}

// New returns an Engine configured by DefaultOptions overridden by opts.
func New(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return NewWithOptions(o)
}

// NewWithOptions returns an Engine using o verbatim (Eps 0 ⇒ DefaultEps).
func NewWithOptions(o Options) (*Engine, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.Eps == 0 {
		o.Eps = DefaultEps
	}

	return &Engine{opts: o}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// row is one normalised constraint Σ coef[t]·x[idx[t]] ≤ rhs.
type row struct {
	idx  []int
	coef []float64
	rhs  float64
}

// change is a trail entry restoring a variable's previous box.
type change struct {
	v      int
	lo, hi float64
}

// search holds all per-solve state. The objective is kept in maximise
// orientation: c = +obj for Maximize, −obj for Minimize.
type search struct {
	ctx  context.Context
	eps  float64
	opts Options

	n    int
	c    []float64
	intC bool // every c is integral

	rows   []row
	occurs [][]int // var → rows it appears in

	lo, hi []float64
	trail  []change

	queue   []int
	inQueue []bool

	useDeadline bool
	deadline    time.Time
	nodes       int64
	stopped     bool
	cancelled   error

	best    []float64
	bestVal float64
	found   bool

	relax *relaxation
}

// Solve runs the search on m. See the package documentation for the
// status mapping.
func (e *Engine) Solve(ctx context.Context, m *ilp.Model) (ilp.Solution, error) {
	if m == nil {
		return ilp.Solution{}, ErrNilModel
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	s := newSearch(ctx, e.opts, m)
	sol, err := s.run(m)
	sol.Elapsed = time.Since(start)
	sol.Nodes = s.nodes

	return sol, err
}

func newSearch(ctx context.Context, opts Options, m *ilp.Model) *search {
	var (
		n    = m.NumVars()
		obj  = m.Objective()
		sign = 1.0
		s    = &search{ctx: ctx, eps: opts.Eps, opts: opts, n: n, intC: true}
	)
	if obj.Direction == ilp.Minimize {
		sign = -1
	}
	s.c = make([]float64, n)
	for _, t := range obj.Expr {
		s.c[t.Var] += sign * t.Coef
	}
	for _, v := range s.c {
		if v != math.Trunc(v) {
			s.intC = false
			break
		}
	}

	s.lo = make([]float64, n)
	s.hi = make([]float64, n)
	for i, v := range m.Vars() {
		s.lo[i] = math.Ceil(v.Lower - opts.Eps)
		s.hi[i] = v.Upper
		if !math.IsInf(v.Upper, 1) {
			s.hi[i] = math.Floor(v.Upper + opts.Eps)
		}
	}

	s.occurs = make([][]int, n)
	for _, c := range m.Constraints() {
		switch c.Sense {
		case ilp.LessEq:
			s.addRow(c.Expr, 1, c.RHS)
		case ilp.GreaterEq:
			s.addRow(c.Expr, -1, -c.RHS)
		default:
			s.addRow(c.Expr, 1, c.RHS)
			s.addRow(c.Expr, -1, -c.RHS)
		}
	}
	s.inQueue = make([]bool, len(s.rows))

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
		s.useDeadline = true
	}
	if d, ok := ctx.Deadline(); ok && (!s.useDeadline || d.Before(deadline)) {
		deadline = d
		s.useDeadline = true
	}
	s.deadline = deadline

	return s
}

func (s *search) addRow(e ilp.Expr, sign, rhs float64) {
	r := row{idx: make([]int, len(e)), coef: make([]float64, len(e)), rhs: rhs}
	for i, t := range e {
		r.idx[i] = int(t.Var)
		r.coef[i] = sign * t.Coef
	}
	id := len(s.rows)
	s.rows = append(s.rows, r)
	for _, v := range r.idx {
		s.occurs[v] = append(s.occurs[v], id)
	}
}

func (s *search) run(m *ilp.Model) (ilp.Solution, error) {
	if err := s.ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ilp.Solution{Status: ilp.TimedOut}, nil
		}
		return ilp.Solution{}, err
	}
	// Empty rows are either trivially true or make the model infeasible.
	for _, r := range s.rows {
		if len(r.idx) == 0 && r.rhs < -s.eps {
			return ilp.Solution{Status: ilp.Infeasible}, nil
		}
	}
	for v := 0; v < s.n; v++ {
		if s.lo[v] > s.hi[v] {
			return ilp.Solution{Status: ilp.Infeasible}, nil
		}
	}

	if !s.propagateAll() {
		return ilp.Solution{Status: ilp.Infeasible}, nil
	}
	for v := 0; v < s.n; v++ {
		if math.IsInf(s.hi[v], 1) {
			return ilp.Solution{}, fmt.Errorf("%w: variable %d", ErrUnboundedDomain, v)
		}
	}
	// Root reductions are permanent.
	s.trail = s.trail[:0]

	if s.opts.Relaxation {
		s.relax = newRelaxation(s)
	}
	s.best = make([]float64, s.n)
	s.dfs()

	switch {
	case s.cancelled != nil:
		return ilp.Solution{}, s.cancelled
	case s.stopped:
		return ilp.Solution{Status: ilp.TimedOut}, nil
	case !s.found:
		return ilp.Solution{Status: ilp.Infeasible}, nil
	}

	if err := m.Check(s.best, 1e-6); err != nil {
		return ilp.Solution{}, fmt.Errorf("%w: %w", ErrIncumbentRejected, err)
	}
	obj, err := m.Evaluate(s.best)
	if err != nil {
		return ilp.Solution{}, err
	}

	return ilp.Solution{Status: ilp.Optimal, Values: s.best, Objective: obj}, nil
}

// limitCheck reports whether the search must stop; it consults the clock
// and the context only every checkEvery nodes.
func (s *search) limitCheck() bool {
	s.nodes++
	if s.opts.MaxNodes > 0 && s.nodes > s.opts.MaxNodes {
		s.stopped = true
		return true
	}
	if s.nodes&(checkEvery-1) != 0 {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.stopped = true
		} else {
			s.cancelled = err
		}
		return true
	}
	if s.useDeadline && time.Now().After(s.deadline) {
		s.stopped = true
		return true
	}

	return false
}

// setLo / setHi tighten a bound, record the previous box and schedule
// the rows mentioning v.
func (s *search) setLo(v int, x float64) {
	s.trail = append(s.trail, change{v: v, lo: s.lo[v], hi: s.hi[v]})
	s.lo[v] = x
	s.touch(v)
}

func (s *search) setHi(v int, x float64) {
	s.trail = append(s.trail, change{v: v, lo: s.lo[v], hi: s.hi[v]})
	s.hi[v] = x
	s.touch(v)
}

func (s *search) touch(v int) {
	for _, r := range s.occurs[v] {
		if !s.inQueue[r] {
			s.inQueue[r] = true
			s.queue = append(s.queue, r)
		}
	}
}

// undo restores every box changed after mark.
func (s *search) undo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		c := s.trail[i]
		s.lo[c.v], s.hi[c.v] = c.lo, c.hi
	}
	s.trail = s.trail[:mark]
}

func (s *search) propagateAll() bool {
	for r := range s.rows {
		if !s.inQueue[r] {
			s.inQueue[r] = true
			s.queue = append(s.queue, r)
		}
	}

	return s.propagate()
}

// propagate drains the row queue; false means a row cannot be satisfied.
func (s *search) propagate() bool {
	for len(s.queue) > 0 {
		r := s.queue[0]
		s.queue = s.queue[1:]
		s.inQueue[r] = false
		if !s.tighten(&s.rows[r]) {
			for _, q := range s.queue {
				s.inQueue[q] = false
			}
			s.queue = s.queue[:0]
			return false
		}
	}
	s.queue = s.queue[:0]

	return true
}

// tighten applies one row: Σ a·x ≤ b.
//
// minAct is Σ a·lo (a>0) + a·hi (a<0). Terms with a<0 on an unbounded
// variable contribute −∞; with one such term only that variable can be
// bounded, with two or more the row is inert.
func (s *search) tighten(r *row) bool {
	var (
		minAct  float64
		ninf    int
		infTerm = -1
	)
	for t, v := range r.idx {
		a := r.coef[t]
		if a > 0 {
			minAct += a * s.lo[v]
			continue
		}
		if math.IsInf(s.hi[v], 1) {
			ninf++
			infTerm = t
			continue
		}
		minAct += a * s.hi[v]
	}

	switch {
	case ninf >= 2:
		return true
	case ninf == 1:
		v, a := r.idx[infTerm], r.coef[infTerm]
		// a·x ≤ rhs − minAct with a < 0  ⇒  x ≥ (rhs − minAct)/a.
		nl := math.Ceil((r.rhs-minAct)/a - s.eps)
		if nl > s.lo[v] {
			s.setLo(v, nl)
		}
		return true
	}

	slack := r.rhs - minAct
	if slack < -s.eps {
		return false
	}
	for t, v := range r.idx {
		a := r.coef[t]
		if a > 0 {
			nh := math.Floor(s.lo[v] + slack/a + s.eps)
			if nh < s.hi[v] {
				if nh < s.lo[v] {
					return false
				}
				s.setHi(v, nh)
			}
			continue
		}
		nl := math.Ceil(s.hi[v] + slack/a - s.eps)
		if nl > s.lo[v] {
			if nl > s.hi[v] {
				return false
			}
			s.setLo(v, nl)
		}
	}

	return true
}

// objBound returns Σ max(c·lo, c·hi) over the current box.
func (s *search) objBound() float64 {
	var b float64
	for v, c := range s.c {
		switch {
		case c > 0:
			b += c * s.hi[v]
		case c < 0:
			b += c * s.lo[v]
		}
	}

	return b
}

// prunable reports whether a node with the given bound cannot beat the
// incumbent.
func (s *search) prunable(bound float64) bool {
	if !s.found {
		return false
	}
	if s.intC {
		bound = math.Floor(bound + 1e-6)
	}

	return bound <= s.bestVal+s.eps
}

// pick returns the first unfixed variable, or −1 at a leaf.
func (s *search) pick() int {
	for v := 0; v < s.n; v++ {
		if s.lo[v] < s.hi[v] {
			return v
		}
	}

	return -1
}

// commit records the current (fully fixed) box as incumbent when better.
func (s *search) commit() {
	var val float64
	for v, c := range s.c {
		val += c * s.lo[v]
	}
	if s.found && val <= s.bestVal+s.eps {
		return
	}
	copy(s.best, s.lo)
	s.bestVal = val
	s.found = true
}

// dfs explores the current box; propagation has already run.
func (s *search) dfs() {
	if s.limitCheck() {
		return
	}
	if s.prunable(s.objBound()) {
		return
	}
	if s.relax != nil {
		if bound, ok := s.relax.bound(s); ok && s.prunable(bound) {
			return
		}
	}

	v := s.pick()
	if v < 0 {
		s.commit()
		return
	}

	// Children as [lo, hi] boxes for v; the preferred side goes first.
	lo, hi := s.lo[v], s.hi[v]
	mid := math.Floor((lo + hi) / 2)
	down, up := [2]float64{lo, mid}, [2]float64{mid + 1, hi}
	children := [2][2]float64{up, down}
	if s.c[v] < 0 {
		children = [2][2]float64{down, up}
	}

	for _, box := range children {
		mark := len(s.trail)
		if box[0] > s.lo[v] {
			s.setLo(v, box[0])
		}
		if box[1] < s.hi[v] {
			s.setHi(v, box[1])
		}
		if s.propagate() {
			s.dfs()
		}
		s.undo(mark)
		if s.stopped || s.cancelled != nil {
			return
		}
	}
}
