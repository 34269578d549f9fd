package units_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nexsys/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactor(t *testing.T) {
	cases := []struct {
		from, to string
		want     float64
	}{
		{"ft", "m", 0.3048},
		{"m", "ft", 1 / 0.3048},
		{"km", "mi", 1000 / 1609.344},
		{"lbf", "N", 4.4482216152605},
		{"slug-ft/s^2", "lbf", 1},
		{"kg-m/s^2", "N", 1},
		{"psi", "lbf/in^2", 1},
		{"atm", "kPa", 101.325},
		{"ft-lbf", "J", 1.3558179483314004},
		{"Btu/hr", "W", 1055.05585262 / 3600},
		{"hp", "kW", 0.74569987158227022},
		{"gal", "L", 3.785411784},
		{"m^3", "L", 1000},
		{"deg", "rad", math.Pi / 180},
		{"rpm", "rad/s", 2 * math.Pi / 60},
		{"dF", "K", 5.0 / 9},
		{"1/s", "Hz", 1},
		{"m^-2", "1/cm^2", 1e-4},
		{"W/m^2-K", "Btu/hr-ft^2-R", 1 / 5.678263},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			got, err := units.Factor(tc.from, tc.to)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.want, got, 1e-6)
		})
	}
}

func TestFactor_Errors(t *testing.T) {
	cases := []struct {
		from, to string
		want     error
	}{
		{"ft", "kg", units.ErrIncompatible},
		{"N", "J", units.ErrIncompatible},
		{"rpm", "Hz", units.ErrIncompatible},
		{"furlong", "m", units.ErrUnknownUnit},
		{"m", "M", units.ErrUnknownUnit},
		{"", "m", units.ErrMalformed},
		{"m/s/s", "m", units.ErrMalformed},
		{"m-", "m", units.ErrMalformed},
		{"m^x", "m", units.ErrMalformed},
		{"m*s", "m", units.ErrMalformed},
		{"1", "m", units.ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			_, err := units.Factor(tc.from, tc.to)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse(t *testing.T) {
	u, err := units.Parse(" kN-m ")
	require.NoError(t, err)
	assert.Equal(t, 1e3, u.Scale)

	j, err := units.Parse("J")
	require.NoError(t, err)
	assert.Equal(t, j.Dim, u.Dim)
	assert.Equal(t, "length^2·mass·time^-2", u.Dim.String())

	one, err := units.Parse("rad/rad")
	require.NoError(t, err)
	assert.Equal(t, "1", one.Dim.String())
}

func TestNames(t *testing.T) {
	names := units.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "psi")
	assert.Contains(t, names, "lbf")
}
