package descriptor

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/tagcover/cluster"
	"github.com/katalvlaran/tagcover/dataset"
)

// Problem is the read-only input of one solve: the n×N incidence matrix,
// the tag names and the partition of the n items into K clusters.
type Problem struct {
	Matrix    *dataset.Incidence
	Tags      []string
	Partition *cluster.Partition
}

// NewProblem checks that the three inputs agree in size. tags may be nil,
// in which case tag j is reported by its index.
//
// Errors: ErrEmptyModel, ErrDimensionMismatch, cluster.ErrNotPartition.
func NewProblem(m *dataset.Incidence, tags []string, p *cluster.Partition) (*Problem, error) {
	prob := &Problem{Matrix: m, Tags: tags, Partition: p}
	if err := prob.validate(); err != nil {
		return nil, err
	}

	return prob, nil
}

// FromDataset partitions ds by its labels (k == 0 infers K) and wraps it.
func FromDataset(ds *dataset.Dataset, k int) (*Problem, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	p, err := cluster.New(ds.Labels, k)
	if err != nil {
		return nil, err
	}

	return NewProblem(ds.Matrix, ds.Tags, p)
}

func (p *Problem) validate() error {
	if p == nil || p.Matrix == nil || p.Partition == nil {
		return ErrEmptyModel
	}
	if p.Matrix.Rows() == 0 || p.Matrix.Cols() == 0 || p.Partition.K() == 0 || p.Partition.Len() == 0 {
		return ErrEmptyModel
	}
	if p.Partition.Len() != p.Matrix.Rows() {
		return fmt.Errorf("%w: partition has %d items, matrix %d rows", ErrDimensionMismatch, p.Partition.Len(), p.Matrix.Rows())
	}
	if p.Tags != nil && len(p.Tags) != p.Matrix.Cols() {
		return fmt.Errorf("%w: %d tag names for %d columns", ErrDimensionMismatch, len(p.Tags), p.Matrix.Cols())
	}

	return p.Partition.Validate()
}

// Items returns n.
func (p *Problem) Items() int { return p.Matrix.Rows() }

// NumTags returns N.
func (p *Problem) NumTags() int { return p.Matrix.Cols() }

// Clusters returns K.
func (p *Problem) Clusters() int { return p.Partition.K() }

// TagName returns the name of tag j, or its index when no names were given.
func (p *Problem) TagName(j int) string {
	if j >= 0 && j < len(p.Tags) {
		return p.Tags[j]
	}

	return strconv.Itoa(j)
}
