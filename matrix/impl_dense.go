// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Carry the ordered column names of a Jacobian so callers can map columns
//     back to unknowns without relying on map iteration order.
//
// Complexity quicksheet:
//   - NewDense/Identity: O(n²) zero-init; At/Set: O(1); Clone: O(n²).
package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - vars optionally names each column (len == c when set).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
	vars []string  // column names, nil when unnamed
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Identity returns the n×n identity matrix: 1 on the diagonal, 0 elsewhere.
//
// Errors:
//   - ErrInvalidDimensions when n <= 0.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// FromColumns builds an n×n matrix from n column vectors of length n.
// vars, when non-nil, names the columns in order and must have length n.
//
// Implementation:
//   - Stage 1: validate n>0, every column has length n, len(vars) ∈ {0 (nil), n}.
//   - Stage 2: scatter columns into the row-major buffer; copy vars.
//
// Errors:
//   - ErrInvalidDimensions (no columns).
//   - ErrDimensionMismatch (ragged columns or wrong vars length).
//
// Complexity:
//   - Time O(n²), Space O(n²).
func FromColumns(columns [][]float64, vars []string) (*Dense, error) {
	n := len(columns)
	if n == 0 {
		return nil, ErrInvalidDimensions
	}
	if vars != nil && len(vars) != n {
		return nil, fmt.Errorf("FromColumns: %d names for %d columns: %w", len(vars), n, ErrDimensionMismatch)
	}
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var i, j int
	for j = 0; j < n; j++ {
		if len(columns[j]) != n {
			return nil, fmt.Errorf("FromColumns: column %d has length %d, want %d: %w",
				j, len(columns[j]), n, ErrDimensionMismatch)
		}
		for i = 0; i < n; i++ {
			m.data[i*n+j] = columns[j][i]
		}
	}
	if vars != nil {
		m.vars = append([]string(nil), vars...)
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Vars returns a copy of the column names, or nil when the matrix is unnamed.
func (m *Dense) Vars() []string {
	if m.vars == nil {
		return nil
	}

	return append([]string(nil), m.vars...)
}

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, copied column names).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.clone()
}

// clone is the typed variant of Clone used by in-package kernels.
func (m *Dense) clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, vars: m.Vars()}
}

// Columns returns the matrix as a slice of column vectors (copies).
// It is the inverse of FromColumns.
func (m *Dense) Columns() [][]float64 {
	out := make([][]float64, m.c)
	var i, j int
	for j = 0; j < m.c; j++ {
		col := make([]float64, m.r)
		for i = 0; i < m.r; i++ {
			col[i] = m.data[i*m.c+j]
		}
		out[j] = col
	}

	return out
}

// String renders rows as lines of comma-separated %g values.
// Intended for diagnostics; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
