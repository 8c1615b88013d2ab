package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tagcover/internal/app"
	"github.com/katalvlaran/tagcover/internal/config"
	"github.com/katalvlaran/tagcover/internal/logging"
)

func newSweepCmd(g *globalFlags) *cobra.Command {
	var (
		mf       modelFlags
		rg       app.Range
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "sweep [flags] FILE.csv",
		Short: "Solve one objective over a range of its parameter",
		Long: `Solve FILE.csv once for every value in --from..--to (inclusive, by --step)
of the parameter the mode varies: the budget for max, the threshold for
min and the per-cluster cap for capped. Other parameters keep the values
given by flags or configuration.

Solves run concurrently, at most --parallel at a time.

Examples:
  # Coverage as the tag budget grows from 1 to 20
  tagcover sweep --mode max --from 1 --to 20 data.csv

  # Tags needed for every 10 covered items, as YAML
  tagcover sweep --mode min --from 0 --to 200 --step 10 -o yaml data.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, func(cfg *config.Config) {
				mf.apply(cmd, cfg)
				if cmd.Flags().Changed("parallel") {
					cfg.Sweep.Parallel = parallel
				}
			})
			if err != nil {
				return err
			}

			return runSweep(cmd, cfg, args[0], rg)
		},
	}
	mf.register(cmd)
	fl := cmd.Flags()
	fl.IntVar(&rg.From, "from", 0, "First parameter value")
	fl.IntVar(&rg.To, "to", 0, "Last parameter value")
	fl.IntVar(&rg.Step, "step", 1, "Parameter increment")
	fl.IntVarP(&parallel, "parallel", "p", 0, "Concurrent solves (default from configuration)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runSweep(cmd *cobra.Command, cfg *config.Config, input string, rg app.Range) error {
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
	s, err := runner.Sweep(ctx, input, prob, params, rg)
	if err != nil {
		return err
	}
	if err := runner.RenderSweep(cmd.OutOrStdout(), s); err != nil {
		return err
	}

	return runner.Finish()
}
