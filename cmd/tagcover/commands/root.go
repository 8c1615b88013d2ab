// Package commands implements the tagcover command line.
package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tagcover/internal/config"
	"github.com/katalvlaran/tagcover/internal/logging"
)

var versionString = "dev"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "tagcover",
		Short: "tagcover - cluster descriptors by integer programming",
		Long: `tagcover picks, for every cluster of a labelled dataset, a small set of
tags that describes it. Each tag may describe at most one cluster, and an
item counts as covered when its cluster's descriptor shares a tag with it.

Three objectives are available:
  max     maximise covered items using at most --budget tags (0 = all)
  min     minimise tags used while covering at least --threshold items
  capped  maximise covered items with at most --cap tags per cluster

Configuration is read from --config (YAML), then TAGCOVER_* environment
variables, then flags.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: console or json")
	pf.StringVarP(&g.format, "output", "o", "", "Report format: text, json or yaml")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored text output")

	root.AddCommand(newSolveCmd(g), newSweepCmd(g), newGenerateCmd(g))

	return root
}

var rootCmd = newRootCmd()

// Execute runs the root command under ctx and prints any error to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), color.RedString("Error: %v", err))
		return err
	}

	return nil
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
	rootCmd.Version = versionString
}

// loadConfig layers the configuration file and environment, then the flags
// set on cmd, validates the result once and configures logging. apply
// receives the command's own flag overrides.
func loadConfig(cmd *cobra.Command, g *globalFlags, apply func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Layered(g.configPath)
	if err != nil {
		return nil, err
	}

	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if fl.Changed("log-format") {
		cfg.Log.Format = g.logFormat
	}
	if fl.Changed("output") {
		cfg.Output.Format = g.format
	}
	if fl.Changed("no-color") {
		cfg.Output.NoColor = g.noColor
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})

	return cfg, nil
}
