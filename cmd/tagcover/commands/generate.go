package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tagcover/dataset"
	"github.com/katalvlaran/tagcover/internal/app"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		seed int64
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "generate [flags] ITEMS TAGS CLUSTERS P",
		Short: "Write a random labelled dataset",
		Long: `Write a synthetic dataset of ITEMS items, TAGS tags and CLUSTERS clusters
in which every tag applies to every item independently with probability P.
Labels are drawn uniformly from 1..CLUSTERS. The file is named after the
parameters and the per-cluster item counts are printed.

Examples:
  tagcover generate 100 30 4 0.2
  tagcover generate --seed 7 --dir testdata 1000 50 8 0.05`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, err := parseGenArgs(args)
			if err != nil {
				return err
			}
			gc.Seed = seed
			if _, err := loadConfig(cmd, g, nil); err != nil {
				return err
			}

			path, counts, err := app.Generate(gc, dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			for k, c := range counts {
				fmt.Fprintf(out, "cluster %d: %d items\n", k+1, c)
			}

			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = fixed default)")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Output directory")

	return cmd
}

func parseGenArgs(args []string) (dataset.GenConfig, error) {
	var (
		gc  dataset.GenConfig
		err error
	)
	ints := []*int{&gc.Items, &gc.Tags, &gc.Clusters}
	names := []string{"ITEMS", "TAGS", "CLUSTERS"}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(args[i]); err != nil {
			return gc, fmt.Errorf("%s: %w", names[i], err)
		}
	}
	if gc.TagProb, err = strconv.ParseFloat(args[3], 64); err != nil {
		return gc, fmt.Errorf("P: %w", err)
	}

	return gc, nil
}
