// SPDX-License-Identifier: MIT

// Package cluster - item partitioning by 1-based labels.
//
// New turns a label column into K disjoint member lists plus the reverse
// item→cluster lookup, so model synthesis never scans clusters per item.
//
// Rationale (succinct):
//  1. Labels are validated once, up front; a label outside [1, K] aborts
//     before any model is built.
//  2. Member slices are sized exactly from a counting pass and filled in
//     item order, which keeps them sorted without a sort.
//  3. The partition is immutable: state is unexported and every slice an
//     accessor returns is a copy.
//
// Complexity:
//   - New: O(n + K) time, O(n + K) memory.
//   - ClusterOf, Size, K, Len: O(1). Items: O(|cluster|). Assignment: O(n).
//   - Validate: O(n).

package cluster

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the partitioner.
var (
	// ErrNoItems indicates that the label column is empty.
	ErrNoItems = errors.New("cluster: no items to partition")

	// ErrBadClusterCount indicates a negative explicit cluster count.
	ErrBadClusterCount = errors.New("cluster: cluster count must be >= 0")

	// ErrInvalidClusterLabel indicates a label outside [1, K].
	ErrInvalidClusterLabel = errors.New("cluster: invalid cluster label")

	// ErrNotPartition indicates member lists and the item lookup that do not
	// describe a partition of 0..n-1 (duplicate, missing or inconsistent items).
	ErrNotPartition = errors.New("cluster: clusters do not partition the items")
)

// LabelError reports the first item whose label is out of range.
// It matches ErrInvalidClusterLabel via errors.Is.
type LabelError struct {
	Item  int // item index (0-based row)
	Label int // offending label (1-based)
	K     int // number of clusters in force
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("cluster: item %d has label %d outside [1, %d]", e.Item, e.Label, e.K)
}

// Is lets errors.Is(err, ErrInvalidClusterLabel) succeed.
func (e *LabelError) Is(target error) bool { return target == ErrInvalidClusterLabel }

// Partition is an immutable assignment of items to K clusters. The zero
// value is an empty partition that fails Validate.
type Partition struct {
	k       int     // number of clusters
	members [][]int // members[c]: items of cluster c, ascending
	of      []int   // of[i]: 0-based cluster of item i
}

// New builds a Partition from 1-based labels. k == 0 infers K from the
// number of distinct labels; k > 0 fixes K explicitly.
//
// Errors: ErrNoItems, ErrBadClusterCount, ErrInvalidClusterLabel (as *LabelError).
func New(labels []int, k int) (*Partition, error) {
	if len(labels) == 0 {
		return nil, ErrNoItems
	}
	if k < 0 {
		return nil, ErrBadClusterCount
	}
	if k == 0 {
		k = distinct(labels)
	}

	var (
		n     = len(labels)
		of    = make([]int, n)
		sizes = make([]int, k)
		i, c  int
	)
	for i = 0; i < n; i++ {
		c = labels[i]
		if c < 1 || c > k {
			return nil, &LabelError{Item: i, Label: c, K: k}
		}
		of[i] = c - 1
		sizes[c-1]++
	}

	// Exact-size member slices; filling in index order keeps them sorted.
	members := make([][]int, k)
	for c = 0; c < k; c++ {
		members[c] = make([]int, 0, sizes[c])
	}
	for i = 0; i < n; i++ {
		members[of[i]] = append(members[of[i]], i)
	}

	return &Partition{k: k, members: members, of: of}, nil
}

// distinct counts distinct label values.
func distinct(labels []int) int {
	seen := make(map[int]struct{}, 8)
	for _, l := range labels {
		seen[l] = struct{}{}
	}

	return len(seen)
}

// K returns the number of clusters.
func (p *Partition) K() int { return p.k }

// Len returns the number of items n.
func (p *Partition) Len() int { return len(p.of) }

// ClusterOf returns the cluster of item i, or -1 if i is out of range.
func (p *Partition) ClusterOf(i int) int {
	if i < 0 || i >= len(p.of) {
		return -1
	}

	return p.of[i]
}

// Items returns a copy of the members of cluster k, or nil when k is out
// of range.
func (p *Partition) Items(k int) []int {
	if k < 0 || k >= p.k {
		return nil
	}

	return append([]int{}, p.members[k]...)
}

// Assignment returns a copy of the item→cluster lookup (0-based clusters).
func (p *Partition) Assignment() []int {
	return append([]int(nil), p.of...)
}

// Size returns |cluster k|, 0 when k is out of range.
func (p *Partition) Size(k int) int {
	if k < 0 || k >= p.k {
		return 0
	}

	return len(p.members[k])
}

// Sizes returns the size of every cluster.
func (p *Partition) Sizes() []int {
	out := make([]int, p.k)
	for k := range out {
		out[k] = len(p.members[k])
	}

	return out
}

// Validate re-checks the partition invariants: one member list per
// cluster, every item 0..n-1 listed exactly once, and the item lookup
// agreeing with the lists. Partitions returned by New always pass; the
// zero value does not.
func (p *Partition) Validate() error {
	if p == nil || p.k <= 0 || len(p.of) == 0 {
		return ErrNoItems
	}
	if len(p.members) != p.k {
		return fmt.Errorf("%w: %d member lists for K=%d", ErrNotPartition, len(p.members), p.k)
	}

	seen := make([]bool, len(p.of))
	for k, items := range p.members {
		for _, i := range items {
			if i < 0 || i >= len(p.of) {
				return fmt.Errorf("%w: item %d out of range", ErrNotPartition, i)
			}
			if seen[i] {
				return fmt.Errorf("%w: item %d assigned twice", ErrNotPartition, i)
			}
			if p.of[i] != k {
				return fmt.Errorf("%w: item %d listed in cluster %d but mapped to %d", ErrNotPartition, i, k, p.of[i])
			}
			seen[i] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: item %d unassigned", ErrNotPartition, i)
		}
	}

	return nil
}
