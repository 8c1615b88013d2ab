// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"strings"
)

// incidenceErrorf wraps an underlying error with Incidence method context.
func incidenceErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Incidence.%s(%d,%d): %w", method, row, col, err)
}

// Incidence is a row-major boolean item×tag matrix.
// r is the item count n, c the tag count N; data holds r*c cells.
type Incidence struct {
	r, c int
	data []bool
}

// NewIncidence creates an rows×cols matrix with every cell false.
// Complexity: O(rows*cols).
func NewIncidence(rows, cols int) (*Incidence, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Incidence{r: rows, c: cols, data: make([]bool, rows*cols)}, nil
}

// IncidenceFromRows builds an Incidence from a slice of equally long rows.
func IncidenceFromRows(rows [][]bool) (*Incidence, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	m, _ := NewIncidence(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), m.c, ErrInconsistent)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row)
	}

	return m, nil
}

// Rows returns the number of items.
func (m *Incidence) Rows() int { return m.r }

// Cols returns the number of tags.
func (m *Incidence) Cols() int { return m.c }

// indexOf computes the flat offset for (row, col) or returns ErrOutOfRange.
func (m *Incidence) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, incidenceErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At reports whether tag col applies to item row.
func (m *Incidence) At(row, col int) (bool, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return false, err
	}

	return m.data[idx], nil
}

// Set marks (row, col) as v.
func (m *Incidence) Set(row, col int, v bool) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Has is the unchecked fast path of At for hot loops whose indices are
// already validated by the caller.
func (m *Incidence) Has(row, col int) bool { return m.data[row*m.c+col] }

// Row returns a copy of item row's tag vector.
func (m *Incidence) Row(row int) ([]bool, error) {
	if row < 0 || row >= m.r {
		return nil, incidenceErrorf("Row", row, 0, ErrOutOfRange)
	}
	out := make([]bool, m.c)
	copy(out, m.data[row*m.c:(row+1)*m.c])

	return out, nil
}

// RowCount returns how many tags apply to item row (0 when out of range).
func (m *Incidence) RowCount(row int) int {
	if row < 0 || row >= m.r {
		return 0
	}
	var cnt int
	for _, v := range m.data[row*m.c : (row+1)*m.c] {
		if v {
			cnt++
		}
	}

	return cnt
}

// ColCount returns how many items carry tag col (0 when out of range).
func (m *Incidence) ColCount(col int) int {
	if col < 0 || col >= m.c {
		return 0
	}
	var cnt, i int
	for i = 0; i < m.r; i++ {
		if m.data[i*m.c+col] {
			cnt++
		}
	}

	return cnt
}

// Clone returns a deep copy.
func (m *Incidence) Clone() *Incidence {
	cp := make([]bool, len(m.data))
	copy(cp, m.data)

	return &Incidence{r: m.r, c: m.c, data: cp}
}

// String renders the matrix as rows of 0/1 for debugging.
func (m *Incidence) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if m.data[i*m.c+j] {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
