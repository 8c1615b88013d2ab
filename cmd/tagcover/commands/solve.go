package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tagcover/internal/app"
	"github.com/katalvlaran/tagcover/internal/config"
	"github.com/katalvlaran/tagcover/internal/logging"
)

// modelFlags select the mode, its parameters, the input layout and the
// engine limits. solve and sweep share them.
type modelFlags struct {
	mode        string
	budget      int
	threshold   int
	clusterCap  int
	clusters    int
	idColumn    string
	clusterCol  string
	solver      string
	timeLimit   time.Duration
	maxNodes    int64
	relaxation  bool
	metricsFile string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.mode, "mode", "m", "", "Objective: max, min or capped (A, B, C)")
	fl.IntVarP(&f.budget, "budget", "B", 0, "Tag budget for max (0 = number of tags)")
	fl.IntVar(&f.threshold, "threshold", 0, "Minimum covered items for min and capped")
	fl.IntVar(&f.clusterCap, "cap", 0, "Tags per cluster for capped (0 = number of tags)")
	fl.IntVarP(&f.clusters, "clusters", "k", 0, "Number of clusters (0 = infer from labels)")
	fl.StringVar(&f.idColumn, "id-column", "", "Item id column name")
	fl.StringVar(&f.clusterCol, "cluster-column", "", "Cluster label column name")
	fl.StringVar(&f.solver, "solver", "", "Engine: bnb (branch and bound) or sat (pseudo-boolean)")
	fl.DurationVar(&f.timeLimit, "time-limit", 0, "Stop the search after this long (0 = no limit)")
	fl.Int64Var(&f.maxNodes, "max-nodes", 0, "Stop the search after this many nodes (0 = no limit)")
	fl.BoolVar(&f.relaxation, "relaxation", false, "Prune with the LP relaxation bound")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
}

func (f *modelFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("mode") {
		cfg.Solve.Mode = f.mode
	}
	if fl.Changed("budget") {
		cfg.Solve.Budget = f.budget
	}
	if fl.Changed("threshold") {
		cfg.Solve.Threshold = f.threshold
	}
	if fl.Changed("cap") {
		cfg.Solve.ClusterCap = f.clusterCap
	}
	if fl.Changed("clusters") {
		cfg.Solve.Clusters = f.clusters
	}
	if fl.Changed("id-column") {
		cfg.Solve.IDColumn = f.idColumn
	}
	if fl.Changed("cluster-column") {
		cfg.Solve.ClusterColumn = f.clusterCol
	}
	if fl.Changed("solver") {
		cfg.Engine.Solver = f.solver
	}
	if fl.Changed("time-limit") {
		cfg.Engine.TimeLimit = f.timeLimit
	}
	if fl.Changed("max-nodes") {
		cfg.Engine.MaxNodes = f.maxNodes
	}
	if fl.Changed("relaxation") {
		cfg.Engine.Relaxation = f.relaxation
	}
	if fl.Changed("metrics-file") {
		cfg.Output.MetricsFile = f.metricsFile
	}
}

func newSolveCmd(g *globalFlags) *cobra.Command {
	var (
		mf     modelFlags
		lpFile string
	)
	cmd := &cobra.Command{
		Use:   "solve [flags] FILE.csv",
		Short: "Find cluster descriptors for one dataset",
		Long: `Read a labelled 0/1 tag matrix from FILE.csv, build the integer program
for the chosen objective, solve it and print one descriptor per cluster.

The CSV has a header row. The cluster column (default C) holds positive
integer labels, the id column (default E) is optional and every other
column is a tag with 0/1 cells.

A search that ends without an optimum (infeasible parameters, or a time or
node limit) prints "No solution." and exits successfully.

Examples:
  # Best coverage with at most 5 tags in total
  tagcover solve --mode max --budget 5 data.csv

  # Fewest tags covering 90 items, as JSON
  tagcover solve --mode min --threshold 90 -o json data.csv

  # Two tags per cluster, at least 50 items covered, model dumped
  tagcover solve --mode capped --cap 2 --threshold 50 --lp-file model.lp data.csv

  # Same objective on the pseudo-boolean SAT engine, one minute at most
  tagcover solve --solver sat --time-limit 1m --mode max --budget 5 data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, func(cfg *config.Config) {
				mf.apply(cmd, cfg)
				if cmd.Flags().Changed("lp-file") {
					cfg.Output.LPFile = lpFile
				}
			})
			if err != nil {
				return err
			}

			return runSolve(cmd, cfg, args[0])
		},
	}
	mf.register(cmd)
	cmd.Flags().StringVar(&lpFile, "lp-file", "", "Write the model in LP format to this file")

	return cmd
}

func runSolve(cmd *cobra.Command, cfg *config.Config, input string) error {
	runner, err := app.NewRunner(cfg)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	prob, err := runner.LoadProblem(input)
	if err != nil {
		return err
	}

	ctx := logging.ContextWithRunID(cmd.Context(), logging.NewRunID())
	rep, err := runner.Solve(ctx, input, prob, params)
	if err != nil {
		return err
	}
	if err := runner.Render(cmd.OutOrStdout(), rep); err != nil {
		return err
	}

	return runner.Finish()
}
