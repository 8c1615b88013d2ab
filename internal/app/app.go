// Package app wires configuration, data loading, the engine, metrics and
// reporting into the operations behind the tagcover commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/tagcover/dataset"
	"github.com/katalvlaran/tagcover/descriptor"
	"github.com/katalvlaran/tagcover/ilp"
	"github.com/katalvlaran/tagcover/ilp/bnb"
	"github.com/katalvlaran/tagcover/ilp/pbsat"
	"github.com/katalvlaran/tagcover/internal/config"
	"github.com/katalvlaran/tagcover/internal/logging"
	"github.com/katalvlaran/tagcover/internal/metrics"
	"github.com/katalvlaran/tagcover/internal/report"
)

// Runner executes tagcover operations for one configuration.
type Runner struct {
	cfg     *config.Config
	engine  ilp.Solver
	metrics *metrics.Recorder
}

// NewRunner builds the engine described by cfg.Engine.
func NewRunner(cfg *config.Config) (*Runner, error) {
	engine, err := newEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("app: engine: %w", err)
	}

	return &Runner{cfg: cfg, engine: engine, metrics: metrics.New()}, nil
}

// newEngine picks bnb or the pseudo-boolean SAT engine. MaxNodes and
// Relaxation only tune bnb.
func newEngine(ec config.EngineConfig) (ilp.Solver, error) {
	switch ec.Solver {
	case config.EngineSAT:
		return pbsat.New(pbsat.Options{TimeLimit: ec.TimeLimit}), nil
	case "", config.EngineBnB:
		return bnb.NewWithOptions(bnb.Options{
			TimeLimit:  ec.TimeLimit,
			MaxNodes:   ec.MaxNodes,
			Relaxation: ec.Relaxation,
		})
	default:
		return nil, fmt.Errorf("%w: engine.solver %q", config.ErrInvalidConfig, ec.Solver)
	}
}

// WithEngine replaces the engine (tests, alternative solvers).
func (r *Runner) WithEngine(s ilp.Solver) *Runner {
	r.engine = s
	return r
}

// Config returns the configuration in force.
func (r *Runner) Config() *config.Config { return r.cfg }

// Metrics returns the run's metrics recorder.
func (r *Runner) Metrics() *metrics.Recorder { return r.metrics }

// LoadProblem reads the CSV at path using the configured column layout and
// partitions it.
func (r *Runner) LoadProblem(path string) (*descriptor.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("app: open input: %w", err)
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f,
		dataset.WithIDColumn(r.cfg.Solve.IDColumn),
		dataset.WithClusterColumn(r.cfg.Solve.ClusterColumn),
	)
	if err != nil {
		return nil, fmt.Errorf("app: read %s: %w", path, err)
	}

	return descriptor.FromDataset(ds, r.cfg.Solve.Clusters)
}

// Solve runs one solve of prob and returns its report. A completed search
// without an optimum is not an error: the report carries Solved == false.
func (r *Runner) Solve(ctx context.Context, input string, prob *descriptor.Problem, params descriptor.Params) (*report.Report, error) {
	return r.solve(ctx, input, prob, params, r.cfg.Output.LPFile)
}

// solve is Solve with an explicit LP dump path ("" disables it).
func (r *Runner) solve(ctx context.Context, input string, prob *descriptor.Problem, params descriptor.Params, lpPath string) (*report.Report, error) {
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.NewRunID()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	log := logging.Ctx(ctx)

	for k, size := range prob.Partition.Sizes() {
		log.Debug().Int("cluster", k+1).Int("items", size).Msg("cluster size")
	}

	form, err := descriptor.Synthesize(prob, params)
	if err != nil {
		return nil, err
	}
	stats := form.Model.Stats()
	r.metrics.ObserveModel(stats)
	log.Info().
		Str("mode", params.Mode.String()).
		Int("items", prob.Items()).
		Int("tags", prob.NumTags()).
		Int("clusters", prob.Clusters()).
		Int("vars", stats.Vars).
		Int("constraints", stats.Constraints).
		Msg("model synthesized")

	if lpPath != "" {
		if err := writeLPFile(lpPath, form.Model); err != nil {
			return nil, err
		}
		log.Debug().Str("path", lpPath).Msg("model written")
	}

	sol, err := r.engine.Solve(ctx, form.Model)
	if err != nil {
		log.Error().Err(err).Msg("engine failed")
		return nil, fmt.Errorf("app: engine: %w", err)
	}
	r.metrics.ObserveSolve(params.Mode.String(), sol.Status, sol.Nodes, sol.Elapsed)

	res, err := descriptor.Decode(form, sol)
	var nse *descriptor.NoSolutionError
	switch {
	case errors.As(err, &nse):
		log.Warn().Str("status", nse.Status.String()).Int64("nodes", sol.Nodes).Msg("no solution")
		return report.New(runID, input, prob, params, nil, sol), nil
	case err != nil:
		return nil, err
	}

	r.metrics.ObserveCoverage(params.Mode.String(), res.TotalHits)
	if _, total := res.Recount(prob); total != res.TotalHits {
		log.Warn().Int("z_hits", res.TotalHits).Int("descriptor_hits", total).Msg("coverage flags disagree with descriptors")
	}
	log.Info().
		Int("tags", res.TotalTags).
		Int("hits", res.TotalHits).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("solved")

	return report.New(runID, input, prob, params, res, sol), nil
}

func writeLPFile(path string, m *ilp.Model) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("app: lp file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("app: lp file: %w", cerr)
		}
	}()

	return ilp.WriteLP(f, m)
}

// Render writes rep in the configured output format.
func (r *Runner) Render(w io.Writer, rep *report.Report) error {
	return report.Write(w, rep, r.cfg.Output.Format, r.cfg.Output.NoColor)
}

// Finish writes the metrics textfile when one is configured.
func (r *Runner) Finish() error {
	if path := r.cfg.Output.MetricsFile; path != "" {
		if err := r.metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("app: metrics file: %w", err)
		}
	}

	return nil
}
