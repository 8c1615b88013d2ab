// Package cluster groups item indices into disjoint clusters.
//
// Items are identified by their row index 0..n-1 and carry a 1-based
// cluster label taken from an external label column. New turns that
// column into a Partition:
//
//   - Items(k) lists the items of cluster k (0-based), ascending.
//   - ClusterOf(i) is the cluster of item i, precomputed once so that
//     model synthesis never rescans clusters.
//
// A Partition never changes after New returns; accessors hand out copies.
//
// Contract: every item appears in exactly one cluster. A label outside
// [1, K] aborts construction with ErrInvalidClusterLabel.
//
// Choosing K:
//
//   - k == 0 - infer K as the number of distinct labels. Labels must then
//     be exactly 1..K; a gap (e.g. {1, 3}) is rejected because label 3
//     falls outside [1, 2].
//   - k > 0  - K is explicit. Clusters with no items are allowed.
//
// Complexity: O(n) time and memory.
package cluster
