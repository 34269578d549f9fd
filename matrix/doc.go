// SPDX-License-Identifier: MIT

// Package matrix offers the dense matrix engine behind the Newton and ascent
// solvers.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 buffer that can carry the ordered list of
//     unknown names identifying each column (Jacobians built by calculus).
//   - Construction: NewDense, Identity, FromColumns.
//   - Elementary row operations in place: Row, ScaleRow, AddToRow.
//   - Kernels: MatVec (y = A·x), Mul (C = A·B), Transpose (Aᵀ).
//   - Gauss-Jordan inversion (Invert in place, Inverse as a copy).
//
// Numeric policy:
//
//   - Inversion runs WITHOUT pivoting by default. Every other row eliminates
//     its entry in the pivot column with a multiple of the pivot row, the same
//     operations are mirrored onto an identity, and the isolated diagonal is
//     normalised at the end. An exact-zero pivot fails with ErrSingular; no
//     reordering fallback is attempted.
//   - WithPartialPivoting opts into row swaps on the largest |pivot|. An
//     all-zero pivot column still fails with ErrSingular.
//   - Without pivoting, ill-conditioned inputs lose precision silently. The
//     Jacobians of well-scaled systems are the intended workload.
//
// Matrices here are small and short-lived: one per solver iteration.
// Sparse or large-N storage is out of scope.
package matrix
