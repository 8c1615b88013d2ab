package descriptor_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tagcover/cluster"
	"github.com/katalvlaran/tagcover/dataset"
	"github.com/katalvlaran/tagcover/descriptor"
	"github.com/katalvlaran/tagcover/ilp/bnb"
)

func exampleProblem() *descriptor.Problem {
	m, _ := dataset.IncidenceFromRows([][]bool{
		{true, false, false},
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{false, false, true},
		{true, false, false},
	})
	p, _ := cluster.New([]int{1, 1, 1, 2, 2, 2}, 0)
	prob, _ := descriptor.NewProblem(m, []string{"red", "green", "blue"}, p)

	return prob
}

// ExampleSolve picks at most two tags (mode A) for two clusters of three items.
func ExampleSolve() {
	engine, _ := bnb.New()
	res, err := descriptor.Solve(context.Background(), engine, exampleProblem(),
		descriptor.Params{Mode: descriptor.BudgetedMaxCoverage, Budget: 2})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range res.Clusters {
		fmt.Printf("cluster %d (%d items): %v hits %d\n", c.Label, c.Size, c.TagNames, c.Hits)
	}
	fmt.Printf("tags %d, covered %d/6\n", res.TotalTags, res.TotalHits)
	// Output:
	// cluster 1 (3 items): [red] hits 2
	// cluster 2 (3 items): [blue] hits 2
	// tags 2, covered 4/6
}

// ExampleSolve_infeasible shows the no-solution outcome of mode B.
func ExampleSolve_infeasible() {
	engine, _ := bnb.New()
	_, err := descriptor.Solve(context.Background(), engine, exampleProblem(),
		descriptor.Params{Mode: descriptor.MinTagsForCoverage, Threshold: 6})
	fmt.Println(errors.Is(err, descriptor.ErrNoSolutionFound))
	fmt.Println(err)
	// Output:
	// true
	// descriptor: no solution found (status infeasible)
}

func ExampleParseMode() {
	for _, s := range []string{"MAX", "min", "C"} {
		m, _ := descriptor.ParseMode(s)
		fmt.Println(m, m.Letter())
	}
	// Output:
	// max A
	// min B
	// capped C
}
