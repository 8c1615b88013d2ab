// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Default header names, matching the layout of the generator.
const (
	DefaultIDColumn      = "E"
	DefaultClusterColumn = "C"
)

// Dataset is the loaded input of one run.
type Dataset struct {
	// Tags holds the tag names in column order (length N).
	Tags []string

	// Matrix is the n×N incidence matrix.
	Matrix *Incidence

	// Labels holds the 1-based cluster label of every item (length n).
	Labels []int

	// IDs holds the item ids when the file had an id column, else nil.
	IDs []string
}

// Validate checks that tags, matrix and labels agree in size.
func (d *Dataset) Validate() error {
	if d == nil || d.Matrix == nil {
		return ErrBadShape
	}
	if len(d.Tags) != d.Matrix.Cols() {
		return fmt.Errorf("%d tag names for %d columns: %w", len(d.Tags), d.Matrix.Cols(), ErrInconsistent)
	}
	if len(d.Labels) != d.Matrix.Rows() {
		return fmt.Errorf("%d labels for %d rows: %w", len(d.Labels), d.Matrix.Rows(), ErrInconsistent)
	}
	if d.IDs != nil && len(d.IDs) != d.Matrix.Rows() {
		return fmt.Errorf("%d ids for %d rows: %w", len(d.IDs), d.Matrix.Rows(), ErrInconsistent)
	}

	return nil
}

// CSVOptions configures ReadCSV and WriteCSV.
type CSVOptions struct {
	IDColumn      string // dropped on read; "" disables id handling
	ClusterColumn string // required on read
	Comma         rune
}

// CSVOption is a functional option for CSVOptions.
type CSVOption func(*CSVOptions)

// WithIDColumn overrides the item-id column name ("" means no id column).
func WithIDColumn(name string) CSVOption {
	return func(o *CSVOptions) { o.IDColumn = name }
}

// WithClusterColumn overrides the cluster column name.
func WithClusterColumn(name string) CSVOption {
	return func(o *CSVOptions) { o.ClusterColumn = name }
}

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) CSVOption {
	return func(o *CSVOptions) { o.Comma = r }
}

// DefaultCSVOptions returns the E/C/comma layout.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{IDColumn: DefaultIDColumn, ClusterColumn: DefaultClusterColumn, Comma: ','}
}

func buildCSVOptions(opts []CSVOption) CSVOptions {
	o := DefaultCSVOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// ReadCSV parses a header row followed by one row per item.
//
// The id column (if present) is kept in Dataset.IDs and excluded from the
// tags; the cluster column becomes Labels; every other column is a tag
// whose cells must parse as booleans ("0", "1", "true", "false").
//
// Errors: ErrMissingColumn, ErrNoTagColumns, ErrNoRows, ErrBadCell (wrapped
// with the line number and column name), and csv.Reader errors.
func ReadCSV(r io.Reader, opts ...CSVOption) (*Dataset, error) {
	o := buildCSVOptions(opts)

	cr := csv.NewReader(r)
	cr.Comma = o.Comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}

		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	var (
		idCol      = -1
		clusterCol = -1
		tagCols    []int
		tags       []string
	)
	for c, name := range header {
		name = strings.TrimSpace(name)
		switch {
		case o.IDColumn != "" && name == o.IDColumn && idCol < 0:
			idCol = c
		case name == o.ClusterColumn && clusterCol < 0:
			clusterCol = c
		default:
			tagCols = append(tagCols, c)
			tags = append(tags, name)
		}
	}
	if clusterCol < 0 {
		return nil, fmt.Errorf("%q: %w", o.ClusterColumn, ErrMissingColumn)
	}
	if len(tagCols) == 0 {
		return nil, ErrNoTagColumns
	}

	var (
		cells  [][]bool
		labels []int
		ids    []string
		line   = 1
	)
	for {
		rec, rerr := cr.Read()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line+1, rerr)
		}
		line++

		row := make([]bool, len(tagCols))
		for j, c := range tagCols {
			v, perr := strconv.ParseBool(strings.TrimSpace(rec[c]))
			if perr != nil {
				return nil, fmt.Errorf("line %d column %q value %q: %w", line, tags[j], rec[c], ErrBadCell)
			}
			row[j] = v
		}
		lbl, perr := strconv.Atoi(strings.TrimSpace(rec[clusterCol]))
		if perr != nil {
			return nil, fmt.Errorf("line %d column %q value %q: %w", line, o.ClusterColumn, rec[clusterCol], ErrBadCell)
		}

		cells = append(cells, row)
		labels = append(labels, lbl)
		if idCol >= 0 {
			ids = append(ids, strings.TrimSpace(rec[idCol]))
		}
	}
	if len(cells) == 0 {
		return nil, ErrNoRows
	}

	m, err := IncidenceFromRows(cells)
	if err != nil {
		return nil, err
	}

	return &Dataset{Tags: tags, Matrix: m, Labels: labels, IDs: ids}, nil
}

// WriteCSV writes d with the id column first (row index when d.IDs is nil),
// the tags as 0/1, and the cluster column last.
func WriteCSV(w io.Writer, d *Dataset, opts ...CSVOption) error {
	if err := d.Validate(); err != nil {
		return err
	}
	o := buildCSVOptions(opts)

	cw := csv.NewWriter(w)
	cw.Comma = o.Comma

	header := make([]string, 0, len(d.Tags)+2)
	if o.IDColumn != "" {
		header = append(header, o.IDColumn)
	}
	header = append(header, d.Tags...)
	header = append(header, o.ClusterColumn)
	if err := cw.Write(header); err != nil {
		return err
	}

	var (
		n, nt = d.Matrix.Rows(), d.Matrix.Cols()
		rec   = make([]string, len(header))
		i, j  int
	)
	for i = 0; i < n; i++ {
		rec = rec[:0]
		if o.IDColumn != "" {
			if d.IDs != nil {
				rec = append(rec, d.IDs[i])
			} else {
				rec = append(rec, strconv.Itoa(i))
			}
		}
		for j = 0; j < nt; j++ {
			if d.Matrix.Has(i, j) {
				rec = append(rec, "1")
			} else {
				rec = append(rec, "0")
			}
		}
		rec = append(rec, strconv.Itoa(d.Labels[i]))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
