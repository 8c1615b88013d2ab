package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tagcover/descriptor"
	"github.com/katalvlaran/tagcover/internal/logging"
	"github.com/katalvlaran/tagcover/internal/report"
)

// maxSweepPoints caps the number of solves one sweep may schedule.
const maxSweepPoints = 10000

// ErrBadRange indicates an empty, negative or oversized sweep range.
var ErrBadRange = errors.New("app: invalid sweep range")

// Range is the inclusive parameter range From, From+Step, …, ≤ To.
type Range struct {
	From, To, Step int
}

// Values expands the range.
func (rg Range) Values() ([]int, error) {
	step := rg.Step
	if step == 0 {
		step = 1
	}
	if rg.From < 0 || rg.To < rg.From || step < 0 || (rg.To-rg.From)/step >= maxSweepPoints {
		return nil, fmt.Errorf("%w: from %d to %d step %d", ErrBadRange, rg.From, rg.To, rg.Step)
	}
	// Index by count; stepping v past To could overflow near MaxInt.
	n := (rg.To-rg.From)/step + 1
	out := make([]int, n)
	for i := range out {
		out[i] = rg.From + i*step
	}

	return out, nil
}

// SweptParameter names the parameter a sweep varies in mode m:
// budget (A), threshold (B) or cap (C).
func SweptParameter(m descriptor.Mode) string {
	switch m {
	case descriptor.MinTagsForCoverage:
		return "threshold"
	case descriptor.ClusterCappedMaxCoverage:
		return "cap"
	default:
		return "budget"
	}
}

func withSwept(base descriptor.Params, v int) descriptor.Params {
	p := base
	switch base.Mode {
	case descriptor.MinTagsForCoverage:
		p.Threshold = v
	case descriptor.ClusterCappedMaxCoverage:
		p.ClusterCap = v
	default:
		p.Budget = v
	}

	return p
}

// Sweep solves prob once per value of rg, varying the parameter of
// base.Mode named by SweptParameter. Solves run concurrently, at most
// Sweep.Parallel at a time; each builds its own model. The LP dump is
// skipped. The first engine or parameter error cancels the rest.
func (r *Runner) Sweep(ctx context.Context, input string, prob *descriptor.Problem, base descriptor.Params, rg Range) (*report.Sweep, error) {
	values, err := rg.Values()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := withSwept(base, v).Validate(); err != nil {
			return nil, err
		}
	}

	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.NewRunID()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	name := SweptParameter(base.Mode)
	logging.Ctx(ctx).Info().Str("mode", base.Mode.String()).Str("parameter", name).
		Int("points", len(values)).Int("parallel", r.cfg.Sweep.Parallel).Msg("sweep started")

	points := make([]report.SweepPoint, len(values))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Sweep.Parallel)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			rep, err := r.solve(gctx, input, prob, withSwept(base, v), "")
			if err != nil {
				return fmt.Errorf("%s=%d: %w", name, v, err)
			}
			points[i] = report.SweepPoint{
				Value:     v,
				Status:    rep.Status,
				TotalTags: rep.TotalTags,
				TotalHits: rep.TotalHits,
				Nodes:     rep.Nodes,
				ElapsedMS: rep.ElapsedMS,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &report.Sweep{RunID: runID, Input: input, Mode: base.Mode.String(), Parameter: name, Points: points}, nil
}

// RenderSweep writes s in the configured output format.
func (r *Runner) RenderSweep(w io.Writer, s *report.Sweep) error {
	return report.WriteSweep(w, s, r.cfg.Output.Format, r.cfg.Output.NoColor)
}
