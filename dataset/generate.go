// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math/rand"
	"strconv"
)

// defaultRNGSeed is used when callers pass Seed == 0, so the zero config
// is still reproducible.
const defaultRNGSeed int64 = 1

// GenConfig parameterizes Generate.
type GenConfig struct {
	Items    int     // n ≥ 1
	Tags     int     // N ≥ 1
	Clusters int     // K ≥ 1
	TagProb  float64 // probability in [0, 1] that a tag applies to an item
	Seed     int64   // 0 ⇒ defaultRNGSeed
}

// rngFromSeed returns a deterministic *rand.Rand (seed==0 ⇒ defaultRNGSeed).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

func (c GenConfig) validate() error {
	if c.Items < 1 || c.Tags < 1 || c.Clusters < 1 {
		return fmt.Errorf("items=%d tags=%d clusters=%d: %w", c.Items, c.Tags, c.Clusters, ErrBadGenConfig)
	}
	if c.TagProb < 0 || c.TagProb > 1 || c.TagProb != c.TagProb {
		return fmt.Errorf("tag probability %v: %w", c.TagProb, ErrBadGenConfig)
	}

	return nil
}

// Generate draws a synthetic dataset. Tags are named A0..A{N-1}, item ids
// are 0..n-1, and each item's label is uniform in 1..K. The second return
// value holds the number of items drawn into each cluster.
//
// The same config always produces the same dataset.
func Generate(cfg GenConfig) (*Dataset, []int, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	var (
		rng    = rngFromSeed(cfg.Seed)
		m, _   = NewIncidence(cfg.Items, cfg.Tags)
		tags   = make([]string, cfg.Tags)
		labels = make([]int, cfg.Items)
		ids    = make([]string, cfg.Items)
		counts = make([]int, cfg.Clusters)
		i, j   int
	)
	for j = 0; j < cfg.Tags; j++ {
		tags[j] = "A" + strconv.Itoa(j)
	}
	for i = 0; i < cfg.Items; i++ {
		ids[i] = strconv.Itoa(i)
		for j = 0; j < cfg.Tags; j++ {
			// Float64 ∈ [0,1): TagProb 1 sets every cell, 0 sets none.
			if rng.Float64() < cfg.TagProb {
				m.data[i*m.c+j] = true
			}
		}
		c := rng.Intn(cfg.Clusters)
		labels[i] = c + 1
		counts[c]++
	}

	return &Dataset{Tags: tags, Matrix: m, Labels: labels, IDs: ids}, counts, nil
}

// FileName returns the conventional file name of a generated dataset:
// synthetic_data_<n>_<N>_<K>_<p>.csv.
func FileName(cfg GenConfig) string {
	return fmt.Sprintf("synthetic_data_%d_%d_%d_%s.csv",
		cfg.Items, cfg.Tags, cfg.Clusters, strconv.FormatFloat(cfg.TagProb, 'g', -1, 64))
}
