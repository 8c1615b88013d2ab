// SPDX-License-Identifier: MIT

// Package dataset holds the item×tag input of a descriptor-selection run
// and the collaborators that produce it.
//
//   - Incidence - a dense, row-major boolean matrix B where B[i][j] == true
//     means tag j applies to item i. Public indexers are bounds-checked and
//     return ErrOutOfRange instead of panicking.
//   - ReadCSV / WriteCSV - delimited files with a header row, an optional
//     item-id column (default "E", dropped on read), one 0/1 column per tag
//     and a 1-based cluster column (default "C").
//   - Generate - reproducible synthetic instances: every tag is applied with
//     probability TagProb and every item lands in a uniformly drawn cluster.
//
// The optimisation core consumes only Incidence, the tag names and the
// label column; it never reads files.
package dataset
