package descriptor

import (
	"fmt"
	"time"

	"github.com/katalvlaran/tagcover/ilp"
)

// ClusterResult is the realised descriptor of one cluster.
type ClusterResult struct {
	Index    int      // 0-based cluster index
	Label    int      // 1-based label as found in the input
	Tags     []int    // selected tag indices, ascending
	TagNames []string // names of Tags
	Size     int      // items in the cluster
	Hits     int      // items of the cluster with z = 1
}

// Result is the decoded answer of an optimal solve.
type Result struct {
	Mode      Mode
	Params    Params
	Clusters  []ClusterResult
	TotalTags int
	TotalHits int
	Covered   []bool // z[i] per item
	Objective float64
	Nodes     int64
	Elapsed   time.Duration
}

// Decode turns an engine solution into per-cluster descriptors.
//
// A non-Optimal status yields a *NoSolutionError and no data. Values are
// read as 1 when ≥ 0.5 to absorb engine float noise.
func Decode(f *Formulation, sol ilp.Solution) (*Result, error) {
	if sol.Status != ilp.Optimal {
		return nil, &NoSolutionError{Status: sol.Status}
	}
	if len(sol.Values) != f.Model.NumVars() {
		return nil, fmt.Errorf("%w: %d values for %d variables", ErrMalformedSolution, len(sol.Values), f.Model.NumVars())
	}

	var (
		prob = f.Problem
		on   = func(v ilp.VarID) bool { return sol.Values[v] >= 0.5 }
		res  = &Result{
			Mode:      f.Params.Mode,
			Params:    f.Params,
			Clusters:  make([]ClusterResult, f.k),
			Covered:   make([]bool, f.n),
			Objective: sol.Objective,
			Nodes:     sol.Nodes,
			Elapsed:   sol.Elapsed,
		}
	)
	for c := range res.Clusters {
		cr := ClusterResult{Index: c, Label: c + 1, Size: prob.Partition.Size(c), Tags: []int{}, TagNames: []string{}}
		for j := 0; j < f.tags; j++ {
			if on(f.Y(j, c)) {
				cr.Tags = append(cr.Tags, j)
				cr.TagNames = append(cr.TagNames, prob.TagName(j))
			}
		}
		res.TotalTags += len(cr.Tags)
		res.Clusters[c] = cr
	}
	for i := 0; i < f.n; i++ {
		if on(f.Z(i)) {
			res.Covered[i] = true
			res.Clusters[prob.Partition.ClusterOf(i)].Hits++
			res.TotalHits++
		}
	}

	return res, nil
}

// Recount recomputes, from the descriptors alone, how many items of each
// cluster share a tag with their cluster's descriptor. For modes A and B
// it always equals the Hits fields; for mode C it does at the optimum.
func (r *Result) Recount(p *Problem) (hits []int, total int) {
	hits = make([]int, len(r.Clusters))
	for c, cr := range r.Clusters {
		for _, i := range p.Partition.Items(c) {
			for _, j := range cr.Tags {
				if p.Matrix.Has(i, j) {
					hits[c]++
					total++
					break
				}
			}
		}
	}

	return hits, total
}

// Descriptor returns the tag indices chosen for cluster c (0-based).
func (r *Result) Descriptor(c int) []int {
	if c < 0 || c >= len(r.Clusters) {
		return nil
	}

	return r.Clusters[c].Tags
}
