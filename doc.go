// Package tagcover finds short, disjoint tag descriptors for the clusters
// of a labelled dataset by integer linear programming.
//
// 🚀 What is tagcover?
//
//	Given a 0/1 item×tag matrix and a partition of the items into K
//	clusters, pick a set of tags for every cluster so that no tag serves
//	two clusters. An item is covered when its cluster's descriptor shares
//	at least one tag with it. Three objectives are offered:
//		• max    – most covered items with at most B tags in total
//		• min    – fewest tags covering at least η items
//		• capped – most covered items with at most α tags per cluster
//
// Under the hood the work is split into small packages:
//
//	dataset/     - incidence matrix, CSV reader/writer, synthetic generator
//	cluster/     - label validation and the item partition
//	ilp/         - model builder, LP-format writer, Solver interface
//	ilp/bnb/     - pure-Go branch-and-bound engine with an optional LP bound
//	ilp/pbsat/   - pseudo-boolean engine on top of gophersat
//	descriptor/  - model synthesis per objective, decoding, Solve
//	internal/    - config, logging, metrics, reporting and the app runner
//	cmd/tagcover - the command line: solve, sweep, generate
//
// Quick example (three items, two clusters):
//
//	         red  blue  cluster
//	item 0    1    0       1
//	item 1    0    1       2
//	item 2    1    1       2
//
//	tagcover solve --mode max --budget 2 items.csv
//
// gives cluster 1 {red} and cluster 2 {blue}, covering all three items.
//
//	go install github.com/katalvlaran/tagcover/cmd/tagcover@latest
package tagcover
