// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep all data finite and well-formed.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/nexsys/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their interface fallback path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// MustIdentity allocates the n×n identity or fails the test.
func MustIdentity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.Identity(n)
	if err != nil {
		t.Fatalf("Identity(%d): %v", n, err)
	}

	return m
}

// MustFromRows builds a *Dense from row slices (test-only convenience).
func MustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			MustSet(t, m, i, j, v)
		}
	}

	return m
}

// MustAt reads m(i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// MustSet writes m(i,j) or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d): %v", i, j, err)
	}
}

// RandomWellConditioned fills an n×n matrix with values in [-1,1) and adds
// n to the diagonal so it is strictly diagonally dominant (hence invertible
// without pivoting).
func RandomWellConditioned(t *testing.T, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := MustDense(t, n, n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v := rng.Float64()*2 - 1
			if i == j {
				v += float64(n)
			}
			MustSet(t, m, i, j, v)
		}
	}

	return m
}

// CompareClose fails when any |want[i][j] - got(i,j)| > tol.
func CompareClose(t *testing.T, want [][]float64, got matrix.Matrix, tol float64) {
	t.Helper()
	if got.Rows() != len(want) || got.Cols() != len(want[0]) {
		t.Fatalf("shape %dx%d, want %dx%d", got.Rows(), got.Cols(), len(want), len(want[0]))
	}
	for i := range want {
		for j := range want[i] {
			g := MustAt(t, got, i, j)
			if math.Abs(g-want[i][j]) > tol {
				t.Fatalf("[%d,%d] = %.12g, want %.12g (tol %g)", i, j, g, want[i][j], tol)
			}
		}
	}
}

// CompareMatrices fails when the two matrices differ by more than tol anywhere.
func CompareMatrices(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	rows := make([][]float64, want.Rows())
	for i := range rows {
		rows[i] = make([]float64, want.Cols())
		for j := range rows[i] {
			rows[i][j] = MustAt(t, want, i, j)
		}
	}
	CompareClose(t, rows, got, tol)
}
