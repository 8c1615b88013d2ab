// SPDX-License-Identifier: MIT

package dataset

import "errors"

// Sentinel errors. Messages carry the "dataset:" prefix; context is added
// with fmt.Errorf("...: %w", ErrX) where a row or column matters.
var (
	// ErrBadShape is returned when requested dimensions are not positive.
	ErrBadShape = errors.New("dataset: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("dataset: index out of range")

	// ErrMissingColumn indicates that a required header column is absent.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrNoTagColumns indicates a header without any tag column.
	ErrNoTagColumns = errors.New("dataset: no tag columns")

	// ErrNoRows indicates a file with a header but no data rows.
	ErrNoRows = errors.New("dataset: no data rows")

	// ErrBadCell indicates a tag cell that is not 0/1 or a non-integer label.
	ErrBadCell = errors.New("dataset: malformed cell")

	// ErrBadGenConfig indicates invalid synthetic-generation parameters.
	ErrBadGenConfig = errors.New("dataset: invalid generator config")

	// ErrInconsistent indicates that tags, matrix and labels disagree in size.
	ErrInconsistent = errors.New("dataset: inconsistent dimensions")
)
