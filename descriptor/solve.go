package descriptor

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tagcover/ilp"
)

// Solve synthesizes the model, runs engine once and decodes the answer.
//
// Outcomes are kept apart:
//   - parameter or input problems: the sentinels of this package and of
//     package cluster, before the engine is called;
//   - engine failures: wrapped engine error;
//   - a completed search without an optimum: *NoSolutionError.
func Solve(ctx context.Context, engine ilp.Solver, prob *Problem, params Params) (*Result, error) {
	f, err := Synthesize(prob, params)
	if err != nil {
		return nil, err
	}
	sol, err := engine.Solve(ctx, f.Model)
	if err != nil {
		return nil, fmt.Errorf("descriptor: engine: %w", err)
	}

	return Decode(f, sol)
}
