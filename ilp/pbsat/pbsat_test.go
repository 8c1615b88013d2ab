package pbsat_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tagcover/ilp"
	"github.com/katalvlaran/tagcover/ilp/bnb"
	"github.com/katalvlaran/tagcover/ilp/pbsat"
)

func build(t *testing.T, b *ilp.Builder) *ilp.Model {
	t.Helper()
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

func TestSolve_Knapsack(t *testing.T) {
	b := ilp.NewBuilder("knapsack")
	x := b.AddBinary("a")
	y := b.AddBinary("b")
	z := b.AddBinary("c")
	b.AddConstraint("w", ilp.Expr{{Var: x, Coef: 2}, {Var: y, Coef: 3}, {Var: z, Coef: 1}}, ilp.LessEq, 4)
	b.SetObjective(ilp.Maximize, ilp.Expr{{Var: x, Coef: 5}, {Var: y, Coef: 4}, {Var: z, Coef: 3}})

	sol, err := pbsat.New(pbsat.Options{}).Solve(context.Background(), build(t, b))
	require.NoError(t, err)
	require.Equal(t, ilp.Optimal, sol.Status)
	assert.Equal(t, 8.0, sol.Objective)
	assert.Equal(t, []float64{1, 0, 1}, sol.Values)
}

func TestSolve_GeneralInteger(t *testing.T) {
	b := ilp.NewBuilder("general")
	x := b.AddBinary("x")
	y := b.AddBinary("y")
	q := b.AddInteger("q", 0, 10)
	b.AddConstraint("cap", ilp.Expr{{Var: q, Coef: 2}}, ilp.LessEq, 7)
	b.AddConstraint("link", ilp.Expr{{Var: q, Coef: 1}, {Var: x, Coef: -1}, {Var: y, Coef: -2}}, ilp.Equal, 0)
	b.SetObjective(ilp.Maximize, ilp.Sum(q))

	sol, err := pbsat.New(pbsat.Options{}).Solve(context.Background(), build(t, b))
	require.NoError(t, err)
	require.Equal(t, ilp.Optimal, sol.Status)
	assert.Equal(t, 3.0, sol.Objective)
	assert.Equal(t, []float64{1, 1, 3}, sol.Values)
}

func TestSolve_TightensOpenUpperBound(t *testing.T) {
	// q ≥ 0 unbounded above, but q − 2x − 3y ≤ 0 caps it at 5.
	b := ilp.NewBuilder("tighten")
	x := b.AddBinary("x")
	y := b.AddBinary("y")
	q := b.AddNonNegInteger("q")
	b.AddConstraint("link", ilp.Expr{{Var: q, Coef: 1}, {Var: x, Coef: -2}, {Var: y, Coef: -3}}, ilp.LessEq, 0)
	b.AddConstraint("one", ilp.Sum(x, y), ilp.LessEq, 1)
	b.SetObjective(ilp.Maximize, ilp.Sum(q))

	sol, err := pbsat.New(pbsat.Options{}).Solve(context.Background(), build(t, b))
	require.NoError(t, err)
	require.Equal(t, ilp.Optimal, sol.Status)
	assert.Equal(t, 3.0, sol.Objective)
}

func TestSolve_Infeasible(t *testing.T) {
	b := ilp.NewBuilder("infeasible")
	x := b.AddBinary("x")
	y := b.AddBinary("y")
	b.AddConstraint("too_many", ilp.Sum(x, y), ilp.GreaterEq, 3)
	b.SetObjective(ilp.Maximize, ilp.Sum(x))

	sol, err := pbsat.New(pbsat.Options{}).Solve(context.Background(), build(t, b))
	require.NoError(t, err)
	assert.Equal(t, ilp.Infeasible, sol.Status)
	assert.Nil(t, sol.Values)
}

func TestSolve_Rejects(t *testing.T) {
	e := pbsat.New(pbsat.Options{})

	_, err := e.Solve(context.Background(), nil)
	assert.ErrorIs(t, err, pbsat.ErrNilModel)

	b := ilp.NewBuilder("open")
	q := b.AddNonNegInteger("q")
	b.SetObjective(ilp.Maximize, ilp.Sum(q))
	_, err = e.Solve(context.Background(), build(t, b))
	assert.ErrorIs(t, err, pbsat.ErrUnboundedDomain)

	b = ilp.NewBuilder("fractional")
	x := b.AddBinary("x")
	b.AddConstraint("half", ilp.Expr{{Var: x, Coef: 0.5}}, ilp.LessEq, 1)
	b.SetObjective(ilp.Maximize, ilp.Sum(x))
	_, err = e.Solve(context.Background(), build(t, b))
	assert.ErrorIs(t, err, pbsat.ErrNonIntegral)
}

func TestSolve_Context(t *testing.T) {
	b := ilp.NewBuilder("ctx")
	x := b.AddBinary("x")
	b.SetObjective(ilp.Maximize, ilp.Sum(x))
	m := build(t, b)
	e := pbsat.New(pbsat.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Solve(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	sol, err := e.Solve(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, ilp.TimedOut, sol.Status)
}

// randomModel mirrors the bnb cross-check: binaries plus a few [0,3]
// integers, coefficients in [-3, 3].
func randomModel(t *testing.T, rng *rand.Rand, id int) *ilp.Model {
	t.Helper()
	b := ilp.NewBuilder(fmt.Sprintf("rand%d", id))
	n := 3 + rng.Intn(4)
	vars := make([]ilp.VarID, n)
	for i := range vars {
		if rng.Intn(3) == 0 {
			vars[i] = b.AddInteger(fmt.Sprintf("x%d", i), 0, 3)
		} else {
			vars[i] = b.AddBinary(fmt.Sprintf("x%d", i))
		}
	}
	for c, nc := 0, 1+rng.Intn(4); c < nc; c++ {
		var e ilp.Expr
		for _, v := range vars {
			if rng.Intn(2) == 0 {
				e = append(e, ilp.Term{Var: v, Coef: float64(rng.Intn(7) - 3)})
			}
		}
		b.AddConstraint(fmt.Sprintf("c%d", c), e, ilp.Sense(rng.Intn(3)), float64(rng.Intn(7)-1))
	}
	obj := make(ilp.Expr, 0, n)
	for _, v := range vars {
		obj = append(obj, ilp.Term{Var: v, Coef: float64(rng.Intn(9) - 4)})
	}
	b.SetObjective(ilp.Direction(rng.Intn(2)), obj)

	return build(t, b)
}

func TestSolve_AgreesWithBranchAndBound(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref, err := bnb.New()
	require.NoError(t, err)
	e := pbsat.New(pbsat.Options{})

	for i := 0; i < 150; i++ {
		m := randomModel(t, rng, i)
		want, err := ref.Solve(context.Background(), m)
		require.NoError(t, err)

		got, err := e.Solve(context.Background(), m)
		require.NoError(t, err, "model %d", i)
		require.Equal(t, want.Status, got.Status, "model %d", i)
		if want.Status == ilp.Optimal {
			assert.InDelta(t, want.Objective, got.Objective, 1e-6, "model %d", i)
			assert.NoError(t, m.Check(got.Values, 1e-6))
		}
	}
}
