package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/nexsys/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolInverse = 1e-9

func TestInvert_Known2x2(t *testing.T) {
	m := invertible2(t)
	require.NoError(t, m.Invert())

	want, err := matrix.FromColumns([][]float64{{2.0, 2.0}, {3.0, 2.0}}, nil)
	require.NoError(t, err)
	CompareMatrices(t, want, m, tolInverse)
}

func TestInvert_Known3x3(t *testing.T) {
	m := invertible3(t)
	require.NoError(t, m.Invert())

	// det = -16; adj(A)/det computed by hand.
	want := [][]float64{
		{3.0 / 16, 4.0 / 16, -5.0 / 16},
		{4.0 / 16, 0, 4.0 / 16},
		{-5.0 / 16, 4.0 / 16, 3.0 / 16},
	}
	CompareClose(t, want, m, tolInverse)
}

func TestInvert_IdentityFixedPoint(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			m := MustIdentity(t, n)
			require.NoError(t, m.Invert())
			CompareMatrices(t, MustIdentity(t, n), m, 0)
		})
	}
}

func TestInvert_RoundTrip(t *testing.T) {
	for _, n := range []int{2, 4, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			orig := RandomWellConditioned(t, n, int64(n))
			m := orig.Clone().(*matrix.Dense)
			require.NoError(t, m.Invert())
			require.NoError(t, m.Invert())
			CompareMatrices(t, orig, m, tolInverse)
		})
	}
}

func TestInverse_ProductIsIdentity(t *testing.T) {
	a := RandomWellConditioned(t, 5, 42)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	p, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	CompareMatrices(t, MustIdentity(t, 5), p, tolInverse)
}

func TestInverse_DoesNotMutateInput(t *testing.T) {
	a := invertible2(t)
	_, err := matrix.Inverse(a)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{-1, 1.5}, {1, -1}}, a, 0)
}

func TestInverse_InterfaceFallback(t *testing.T) {
	inv, err := matrix.Inverse(hide{invertible2(t)})
	require.NoError(t, err)
	CompareClose(t, [][]float64{{2, 3}, {2, 2}}, inv, tolInverse)
}

func TestInverse_KeepsVars(t *testing.T) {
	a, err := matrix.FromColumns([][]float64{{2, 0}, {0, 4}}, []string{"x", "y"})
	require.NoError(t, err)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, inv.Vars())
	CompareClose(t, [][]float64{{0.5, 0}, {0, 0.25}}, inv, 0)
}

func TestInvert_Singular(t *testing.T) {
	cases := map[string][][]float64{
		"zero":       {{0, 0}, {0, 0}},
		"rank1":      {{1, 2}, {2, 4}},
		"zeroColumn": {{1, 0, 2}, {3, 0, 4}, {5, 0, 6}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			m := MustFromRows(t, rows)
			err := m.Invert(matrix.WithPartialPivoting())
			assert.ErrorIs(t, err, matrix.ErrSingular)
			// failure leaves the receiver intact
			CompareClose(t, rows, m, 0)
		})
	}
}

// TestInvert_ZeroPivotWithoutPivoting exercises a permutation matrix: it is
// invertible, but plain Gauss-Jordan meets a zero at (0,0).
func TestInvert_ZeroPivotWithoutPivoting(t *testing.T) {
	m := MustFromRows(t, [][]float64{{0, 1}, {1, 0}})
	assert.ErrorIs(t, m.Invert(), matrix.ErrSingular)

	require.NoError(t, m.Invert(matrix.WithPartialPivoting()))
	CompareClose(t, [][]float64{{0, 1}, {1, 0}}, m, 0)
}

func TestInvert_ShapeErrors(t *testing.T) {
	m := MustDense(t, 2, 3)
	assert.ErrorIs(t, m.Invert(), matrix.ErrNonSquare)

	_, err := matrix.Inverse(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	var d *matrix.Dense
	assert.ErrorIs(t, d.Invert(), matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	x := []float64{1.5, -2, 3}
	y, err := matrix.MatVec(MustIdentity(t, 3), x)
	require.NoError(t, err)
	assert.Equal(t, x, y)

	a := MustFromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y, err = matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, y)

	y, err = matrix.MatVec(hide{a}, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, y)

	_, err = matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(nil, x)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	a := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	want := [][]float64{{58, 64}, {139, 154}}

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, want, p, 0)

	p, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	CompareClose(t, want, p, 0)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, b)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	a := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, 2, at.Cols())
	CompareClose(t, want, at, 0)

	at, err = matrix.Transpose(hide{a})
	require.NoError(t, err)
	CompareClose(t, want, at, 0)

	// A·Aᵀ is symmetric.
	g, err := matrix.Mul(a, at)
	require.NoError(t, err)
	CompareClose(t, [][]float64{{14, 32}, {32, 77}}, g, 0)

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
