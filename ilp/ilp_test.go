package ilp_test

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/ilp"
)

// tinyModel: max 2x + 3y s.t. x + y <= 1, q = x + y, q integer ≥ 0.
func tinyModel(t *testing.T) *ilp.Model {
	t.Helper()
	b := ilp.NewBuilder("tiny")
	x := b.AddBinary("x")
	y := b.AddBinary("y")
	q := b.AddNonNegInteger("q")
	b.AddConstraint("pick", ilp.Sum(x, y), ilp.LessEq, 1)
	b.AddConstraint("count", ilp.Expr{{Var: q, Coef: 1}, {Var: x, Coef: -1}, {Var: y, Coef: -1}}, ilp.Equal, 0)
	b.SetObjective(ilp.Maximize, ilp.Expr{{Var: x, Coef: 2}, {Var: y, Coef: 3}})
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

func TestBuilder_BuildsImmutableModel(t *testing.T) {
	m := tinyModel(t)

	assert.Equal(t, "tiny", m.Name())
	assert.Equal(t, 3, m.NumVars())
	assert.Equal(t, 2, m.NumConstraints())
	assert.Equal(t, ilp.Stats{Vars: 3, Binary: 2, Integer: 1, Constraints: 2, Nonzeros: 5}, m.Stats())

	// Mutating returned copies must not leak into the model.
	cons := m.Constraints()
	cons[0].Expr[0].Coef = 99
	c0, ok := m.Constraint(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, c0.Expr[0].Coef)

	vars := m.Vars()
	vars[0].Name = "mutated"
	v0, ok := m.Var(0)
	require.True(t, ok)
	assert.Equal(t, "x", v0.Name)

	_, ok = m.Var(7)
	assert.False(t, ok)
	_, ok = m.Constraint(-1)
	assert.False(t, ok)
}

func TestBuilder_MergesDuplicateTerms(t *testing.T) {
	b := ilp.NewBuilder("merge")
	x := b.AddBinary("x")
	y := b.AddBinary("y")
	b.AddConstraint("c", ilp.Expr{{Var: x, Coef: 1}, {Var: y, Coef: 2}, {Var: x, Coef: 2}, {Var: y, Coef: -2}}, ilp.LessEq, 3)
	b.SetObjective(ilp.Minimize, nil)
	m, err := b.Build()
	require.NoError(t, err)

	c, _ := m.Constraint(0)
	assert.Equal(t, ilp.Expr{{Var: x, Coef: 3}}, c.Expr)
}

func TestBuilder_Errors(t *testing.T) {
	cases := map[string]struct {
		build func(b *ilp.Builder)
		want  error
	}{
		"no vars": {func(b *ilp.Builder) { b.SetObjective(ilp.Minimize, nil) }, ilp.ErrNoVars},
		"no objective": {func(b *ilp.Builder) { b.AddBinary("x") }, ilp.ErrNoObjective},
		"unknown var": {func(b *ilp.Builder) {
			b.AddBinary("x")
			b.AddConstraint("c", ilp.Sum(5), ilp.LessEq, 1)
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrUnknownVar},
		"nan coef": {func(b *ilp.Builder) {
			x := b.AddBinary("x")
			b.SetObjective(ilp.Minimize, ilp.Expr{{Var: x, Coef: math.NaN()}})
		}, ilp.ErrBadCoefficient},
		"inf rhs": {func(b *ilp.Builder) {
			x := b.AddBinary("x")
			b.AddConstraint("c", ilp.Sum(x), ilp.LessEq, math.Inf(1))
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrBadCoefficient},
		"duplicate var": {func(b *ilp.Builder) {
			b.AddBinary("x")
			b.AddBinary("x")
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrDuplicateName},
		"duplicate constraint": {func(b *ilp.Builder) {
			x := b.AddBinary("x")
			b.AddConstraint("c", ilp.Sum(x), ilp.LessEq, 1)
			b.AddConstraint("c", ilp.Sum(x), ilp.LessEq, 1)
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrDuplicateName},
		"empty name": {func(b *ilp.Builder) {
			b.AddBinary("")
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrEmptyName},
		"bad bounds": {func(b *ilp.Builder) {
			b.AddInteger("x", 3, 1)
			b.SetObjective(ilp.Minimize, nil)
		}, ilp.ErrBadBounds},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b := ilp.NewBuilder(name)
			tc.build(b)
			_, err := b.Build()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuilder_Sealed(t *testing.T) {
	b := ilp.NewBuilder("sealed")
	b.AddBinary("x")
	b.SetObjective(ilp.Minimize, nil)
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, ilp.ErrBuilderSealed)
	b.AddBinary("y")
	assert.ErrorIs(t, b.Err(), ilp.ErrBuilderSealed)
}

func TestModel_CheckAndEvaluate(t *testing.T) {
	m := tinyModel(t)

	require.NoError(t, m.Check([]float64{0, 1, 1}, 1e-9))
	obj, err := m.Evaluate([]float64{0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 3.0, obj)

	assert.ErrorIs(t, m.Check([]float64{1, 1, 2}, 1e-9), ilp.ErrViolated)    // pick broken
	assert.ErrorIs(t, m.Check([]float64{1, 0, 0}, 1e-9), ilp.ErrViolated)    // count broken
	assert.ErrorIs(t, m.Check([]float64{0.5, 0, 0.5}, 1e-9), ilp.ErrViolated) // fractional
	assert.ErrorIs(t, m.Check([]float64{2, 0, 2}, 1e-9), ilp.ErrViolated)    // bound
	assert.ErrorIs(t, m.Check([]float64{0}, 1e-9), ilp.ErrValueCount)
	_, err = m.Evaluate(nil)
	assert.ErrorIs(t, err, ilp.ErrValueCount)
}

func TestWriteLP(t *testing.T) {
	m := tinyModel(t)

	var buf bytes.Buffer
	require.NoError(t, ilp.WriteLP(&buf, m))

	want := `\ Model tiny
Maximize
 obj: 2 x + 3 y
Subject To
 pick: x + y <= 1
 count: q - x - y = 0
Bounds
 q >= 0
Binaries
 x
 y
Generals
 q
End
`
	assert.Equal(t, want, buf.String())
}

func TestStatusAndSolution(t *testing.T) {
	assert.Equal(t, "optimal", ilp.Optimal.String())
	assert.Equal(t, "timed_out", ilp.TimedOut.String())
	assert.Equal(t, "unknown", ilp.Status(0).String())
	assert.Equal(t, "<=", ilp.LessEq.String())
	assert.Equal(t, "maximize", ilp.Maximize.String())
	assert.Equal(t, "integer", ilp.Integer.String())

	s := ilp.Solution{Values: []float64{1, 0}}
	assert.Equal(t, 1.0, s.Value(0))
	assert.Equal(t, 0.0, s.Value(5))

	obj := ilp.Objective{Direction: ilp.Maximize}
	assert.True(t, obj.Better(2, 1, 1e-9))
	assert.False(t, obj.Better(1, 1, 1e-9))

	called := false
	var solver ilp.Solver = ilp.SolverFunc(func(ctx context.Context, m *ilp.Model) (ilp.Solution, error) {
		called = true
		return ilp.Solution{Status: ilp.Infeasible}, nil
	})
	sol, err := solver.Solve(context.Background(), tinyModel(t))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, ilp.Infeasible, sol.Status)
}
