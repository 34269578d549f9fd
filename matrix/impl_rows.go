// SPDX-License-Identifier: MIT

// Package matrix - elementary row operations on *Dense, in place.
//
// These are the building blocks of Gauss-Jordan elimination and are exported
// for callers that assemble their own reductions.
package matrix

import "fmt"

const (
	opRow      = "Row"
	opScaleRow = "ScaleRow"
	opAddToRow = "AddToRow"
)

// Row returns a copy of row i.
//
// Errors:
//   - ErrOutOfRange when i is not a valid row index.
//
// Complexity:
//   - Time O(c), Space O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if err := validateRowIndex(i, m.r); err != nil {
		return nil, matrixErrorf(opRow, err)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// ScaleRow multiplies every entry of row i by s.
//
// Errors:
//   - ErrOutOfRange when i is not a valid row index.
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) ScaleRow(i int, s float64) error {
	if err := validateRowIndex(i, m.r); err != nil {
		return matrixErrorf(opScaleRow, err)
	}
	m.scaleRow(i, s)

	return nil
}

// AddToRow adds v element-wise to row i.
//
// Errors:
//   - ErrOutOfRange when i is not a valid row index.
//   - ErrDimensionMismatch when len(v) != Cols().
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) AddToRow(i int, v []float64) error {
	if err := validateRowIndex(i, m.r); err != nil {
		return matrixErrorf(opAddToRow, err)
	}
	if err := ValidateVecLen(v, m.c); err != nil {
		return matrixErrorf(opAddToRow, fmt.Errorf("len %d: %w", len(v), err))
	}
	base := i * m.c
	for j := 0; j < m.c; j++ {
		m.data[base+j] += v[j]
	}

	return nil
}

// scaleRow is the unchecked kernel behind ScaleRow.
func (m *Dense) scaleRow(i int, s float64) {
	base := i * m.c
	for j := 0; j < m.c; j++ {
		m.data[base+j] *= s
	}
}

// addScaledRow performs row[dst] += s * row[src] without bounds checks.
func (m *Dense) addScaledRow(dst, src int, s float64) {
	bd, bs := dst*m.c, src*m.c
	for j := 0; j < m.c; j++ {
		m.data[bd+j] += s * m.data[bs+j]
	}
}

// swapRows exchanges rows a and b without bounds checks.
func (m *Dense) swapRows(a, b int) {
	if a == b {
		return
	}
	ba, bb := a*m.c, b*m.c
	for j := 0; j < m.c; j++ {
		m.data[ba+j], m.data[bb+j] = m.data[bb+j], m.data[ba+j]
	}
}
