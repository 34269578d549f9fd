// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the solvers:
// matrix-vector product, matrix product, transpose and Gauss-Jordan inversion.
// All functions perform strict fail-fast validation and return sentinel
// errors wrapped with an operation tag.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial accumulator value for dot products.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting an exact-zero pivot in Gauss-Jordan.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opInverse   = "Inverse"
	opInvert    = "Invert"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul returns the product A × B as a new *Dense. Neither input is mutated.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible (non-nil, A.Cols == B.Rows).
//   - Stage 2: view both operands as row-major buffers (non-Dense inputs are
//     copied through At) and accumulate row i of the result as the sum of
//     A[i,k] × row k of B, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := view(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := view(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j int
		aik     float64
		out, in []float64
	)
	for i = 0; i < da.r; i++ {
		out = res.data[i*db.c : (i+1)*db.c]
		for k = 0; k < da.c; k++ {
			if aik = da.data[i*da.c+k]; aik == 0 {
				continue
			}
			in = db.data[k*db.c : (k+1)*db.c]
			for j = range out {
				out[j] += aik * in[j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new *Dense. Column names are not carried over.
//
// Errors:
//   - ErrNilMatrix.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := view(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols(), else ErrDimensionMismatch.
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), m.Cols(), err))
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Invert replaces m with its inverse using Gauss-Jordan elimination.
//
// Implementation:
//   - Stage 1: ValidateSquare(m). Work on a copy A of m and an identity I.
//   - Stage 2: For each pivot column c (optionally swapping in the row with the
//     largest |A[r,c]|, r ≥ c): fail with ErrSingular if A[c,c] == 0; for every
//     other row r, add -A[r,c]/A[c,c] × row c to row r in A and mirror it in I.
//   - Stage 3: Divide every row of A and I by the isolated diagonal A[i,i]
//     (exact zero → ErrSingular). I is now A⁻¹; copy it into m.
//
// Behavior highlights:
//   - m is left untouched on failure: never a partially reduced matrix.
//   - Column names survive; after inversion they label the ROWS of the
//     inverse, i.e. the unknowns of a Newton step Δ = J⁻¹·f.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (shape).
//   - ErrSingular  (exact-zero pivot; no fallback unless WithPartialPivoting).
//
// Determinism:
//   - Fixed column order c = 0..n-1 and row order r = 0..n-1.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// AI-Hints:
//   - Call Invert on the freshly built Jacobian and discard it after use;
//     inverting twice round-trips within ~1e-9 for well-conditioned inputs.
func (m *Dense) Invert(opts ...Option) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opInvert, err)
	}
	inv, err := gaussJordan(m.clone(), gatherOptions(opts...))
	if err != nil {
		return matrixErrorf(opInvert, err)
	}
	copy(m.data, inv.data)

	return nil
}

// Inverse returns A⁻¹ as a new *Dense; the input is not mutated.
// Non-Dense inputs are copied through At. See Invert for the algorithm.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	a, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := gaussJordan(a, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv.vars = a.vars

	return inv, nil
}

// gaussJordan reduces a (destroyed) to the identity and returns the mirrored
// identity, which ends up holding a⁻¹.
func gaussJordan(a *Dense, o Options) (*Dense, error) {
	n := a.r
	inv, err := Identity(n)
	if err != nil {
		return nil, err
	}

	var (
		c, r, p       int
		pivot, factor float64
		best, cand    float64
	)
	for c = 0; c < n; c++ {
		if o.partialPivoting {
			// Only rows r >= c are candidates; rows above already own a pivot.
			p, best = c, math.Abs(a.data[c*n+c])
			for r = c + 1; r < n; r++ {
				if cand = math.Abs(a.data[r*n+c]); cand > best {
					p, best = r, cand
				}
			}
			a.swapRows(c, p)
			inv.swapRows(c, p)
		}

		pivot = a.data[c*n+c]
		if pivot == ZeroPivot {
			return nil, fmt.Errorf("pivot column %d: %w", c, ErrSingular)
		}
		for r = 0; r < n; r++ {
			if r == c || a.data[r*n+c] == 0 {
				continue // diagonal stays; zero entries need no elimination
			}
			factor = -a.data[r*n+c] / pivot
			a.addScaledRow(r, c, factor)
			inv.addScaledRow(r, c, factor)
		}
	}

	// Normalise by the isolated diagonal.
	var d float64
	for r = 0; r < n; r++ {
		d = a.data[r*n+r]
		if d == ZeroPivot {
			return nil, fmt.Errorf("diagonal %d: %w", r, ErrSingular)
		}
		a.scaleRow(r, 1/d)
		inv.scaleRow(r, 1/d)
	}

	return inv, nil
}

// view returns m itself when it is a *Dense and a copy otherwise. Callers
// must treat the result as read-only.
func view(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	return toDense(m)
}

// toDense returns a private *Dense copy of m.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.clone(), nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*cols+j] = v
		}
	}

	return out, nil
}
