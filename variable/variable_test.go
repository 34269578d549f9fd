package variable_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nexsys/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStep_ClampsAtUpperBound pins the clamp policy: a step past the
// upper bound lands exactly on the bound, never beyond and never ignored.
func TestStep_ClampsAtUpperBound(t *testing.T) {
	v, err := variable.NewBounded(5, 0, 10)
	require.NoError(t, err)

	v.Step(10)
	assert.Equal(t, 10.0, v.Value())
}

func TestStep_ClampsAtLowerBound(t *testing.T) {
	v, err := variable.NewBounded(5, 0, 10)
	require.NoError(t, err)

	v.Step(-7)
	assert.Equal(t, 0.0, v.Value())
}

func TestStep_InsideDomainAccepted(t *testing.T) {
	v, err := variable.NewBounded(5, 0, 10)
	require.NoError(t, err)

	v.Step(2.5)
	assert.Equal(t, 7.5, v.Value())
}

func TestStep_Unbounded(t *testing.T) {
	v := variable.New(1)
	v.Step(1e6)
	assert.Equal(t, 1e6+1, v.Value())
	v.Step(math.Inf(-1))
	assert.True(t, math.IsInf(v.Value(), -1))
}

// TestSet_SamePolicyAsStep checks that absolute assignment uses the same
// boundary rule as relative stepping.
func TestSet_SamePolicyAsStep(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   float64
		want float64
	}{
		{"inside", 3, 3},
		{"on low", 0, 0},
		{"on high", 10, 10},
		{"below", -1, 0},
		{"above", 15, 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := variable.NewBounded(5, 0, 10)
			require.NoError(t, err)
			v.Set(tc.in)
			assert.Equal(t, tc.want, v.Value())
		})
	}
}

func TestSet_NaNIgnoredWhenBounded(t *testing.T) {
	v, err := variable.NewBounded(4, 0, 10)
	require.NoError(t, err)
	v.Set(math.NaN())
	assert.Equal(t, 4.0, v.Value())
}

func TestNewBounded_ClampsInitialValue(t *testing.T) {
	v, err := variable.NewBounded(-3, -1, 1)
	require.NoError(t, err)
	assert.Equal(t, -1.0, v.Value())

	d, ok := v.Domain()
	assert.True(t, ok)
	assert.Equal(t, variable.Domain{Low: -1, High: 1}, d)
}

func TestNewBounded_InvalidDomain(t *testing.T) {
	_, err := variable.NewBounded(0, 2, 1)
	assert.ErrorIs(t, err, variable.ErrInvalidDomain)

	_, err = variable.NewBounded(0, math.Inf(-1), 1)
	assert.ErrorIs(t, err, variable.ErrInvalidDomain)

	_, err = variable.NewBounded(0, 0, math.NaN())
	assert.ErrorIs(t, err, variable.ErrInvalidDomain)
}

func TestVector_CloneIsIndependent(t *testing.T) {
	vec := variable.Vector{"x": variable.New(1), "y": variable.New(2)}
	cp := vec.Clone()
	cp.Step("x", 5)

	assert.Equal(t, 1.0, vec["x"].Value())
	assert.Equal(t, 6.0, cp["x"].Value())
}

func TestVector_NamesSorted(t *testing.T) {
	vec := variable.Vector{"z": variable.New(0), "a": variable.New(0), "m": variable.New(0)}
	assert.Equal(t, []string{"a", "m", "z"}, vec.Names())
}

func TestVector_StepUnknownName(t *testing.T) {
	vec := variable.Vector{"x": variable.New(1)}
	assert.False(t, vec.Step("nope", 1))
	assert.True(t, vec.Step("x", 1))
	assert.Equal(t, map[string]float64{"x": 2}, vec.Values())
}

func TestFromValues_AppliesBounds(t *testing.T) {
	vec, err := variable.FromValues(
		map[string]float64{"x": 20, "y": 1},
		map[string]variable.Domain{"x": {Low: 0, High: 10}, "w": {Low: 2, High: 3}},
	)
	require.NoError(t, err)
	assert.Equal(t, 10.0, vec["x"].Value())
	assert.False(t, vec["y"].Bounded())
	assert.Equal(t, 2.0, vec["w"].Value())

	_, err = variable.FromValues(nil, map[string]variable.Domain{"x": {Low: 1, High: 0}})
	assert.ErrorIs(t, err, variable.ErrInvalidDomain)
}
