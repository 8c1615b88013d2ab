package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/tagcover/dataset"
	"github.com/katalvlaran/tagcover/internal/logging"
)

// Generate writes a synthetic dataset into dir under dataset.FileName(cfg)
// and returns its path and the per-cluster item counts.
func Generate(cfg dataset.GenConfig, dir string) (string, []int, error) {
	ds, counts, err := dataset.Generate(cfg)
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(dir, dataset.FileName(cfg))
	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("app: create %s: %w", path, err)
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		f.Close()
		return "", nil, fmt.Errorf("app: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("app: close %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("items", cfg.Items).
		Int("tags", cfg.Tags).
		Int("clusters", cfg.Clusters).
		Float64("p", cfg.TagProb).
		Ints("cluster_counts", counts).
		Msg("dataset generated")

	return path, counts, nil
}
