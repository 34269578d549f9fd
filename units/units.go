// SPDX-License-Identifier: MIT

package units

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownUnit reports a name missing from the unit table.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrMalformed reports a unit expression that does not follow the grammar.
	ErrMalformed = errors.New("units: malformed unit expression")

	// ErrIncompatible reports a conversion between different dimensions.
	ErrIncompatible = errors.New("units: incompatible dimensions")
)

// Base dimensions, in the order of Dimension's components.
const (
	dimLength = iota
	dimMass
	dimTime
	dimCurrent
	dimTemperature
	dimAmount
	dimAngle
	dimCount
)

var dimNames = [dimCount]string{"length", "mass", "time", "current", "temperature", "amount", "angle"}

// Dimension holds the exponent of every base dimension.
type Dimension [dimCount]int

func base(i int) Dimension {
	var d Dimension
	d[i] = 1
	return d
}

func (d Dimension) times(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d Dimension) pow(p int) Dimension {
	for i := range d {
		d[i] *= p
	}
	return d
}

// String renders d as "length·time^-2", or "1" when dimensionless.
func (d Dimension) String() string {
	var parts []string
	for i, e := range d {
		switch e {
		case 0:
		case 1:
			parts = append(parts, dimNames[i])
		default:
			parts = append(parts, dimNames[i]+"^"+strconv.Itoa(e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, "·")
}

// Unit is a scale to SI together with its dimension.
type Unit struct {
	Scale float64
	Dim   Dimension
}

func (u Unit) times(o Unit) Unit {
	return Unit{Scale: u.Scale * o.Scale, Dim: u.Dim.times(o.Dim)}
}

func (u Unit) pow(p int) Unit {
	return Unit{Scale: math.Pow(u.Scale, float64(p)), Dim: u.Dim.pow(p)}
}

var (
	length      = base(dimLength)
	mass        = base(dimMass)
	duration    = base(dimTime)
	current     = base(dimCurrent)
	temperature = base(dimTemperature)
	amount      = base(dimAmount)
	angle       = base(dimAngle)

	area      = length.pow(2)
	volume    = length.pow(3)
	frequency = duration.pow(-1)
	force     = mass.times(length).times(duration.pow(-2))
	pressure  = force.times(length.pow(-2))
	energy    = force.times(length)
	power     = energy.times(duration.pow(-1))
	charge    = current.times(duration)
	voltage   = power.times(current.pow(-1))
	ohm       = voltage.times(current.pow(-1))
)

// table maps every known name to its SI scale.
var table = map[string]Unit{
	// length
	"m":   {1, length},
	"km":  {1e3, length},
	"cm":  {1e-2, length},
	"mm":  {1e-3, length},
	"um":  {1e-6, length},
	"nm":  {1e-9, length},
	"in":  {0.0254, length},
	"ft":  {0.3048, length},
	"yd":  {0.9144, length},
	"mi":  {1609.344, length},
	"nmi": {1852, length},

	// mass
	"kg":   {1, mass},
	"g":    {1e-3, mass},
	"mg":   {1e-6, mass},
	"t":    {1e3, mass},
	"lb":   {0.45359237, mass},
	"lbm":  {0.45359237, mass},
	"oz":   {0.028349523125, mass},
	"slug": {14.593902937206364, mass},

	// time
	"s":   {1, duration},
	"ms":  {1e-3, duration},
	"us":  {1e-6, duration},
	"min": {60, duration},
	"h":   {3600, duration},
	"hr":  {3600, duration},
	"day": {86400, duration},

	// current, temperature difference, amount, angle
	"A":    {1, current},
	"mA":   {1e-3, current},
	"K":    {1, temperature},
	"dC":   {1, temperature},
	"R":    {5.0 / 9, temperature},
	"dF":   {5.0 / 9, temperature},
	"mol":  {1, amount},
	"kmol": {1e3, amount},
	"rad":  {1, angle},
	"deg":  {math.Pi / 180, angle},
	"rev":  {2 * math.Pi, angle},

	// area, volume
	"ha":  {1e4, area},
	"ac":  {4046.8564224, area},
	"L":   {1e-3, volume},
	"mL":  {1e-6, volume},
	"gal": {3.785411784e-3, volume},

	// frequency, angular speed
	"Hz":  {1, frequency},
	"kHz": {1e3, frequency},
	"rpm": {2 * math.Pi / 60, angle.times(frequency)},

	// force
	"N":   {1, force},
	"kN":  {1e3, force},
	"dyn": {1e-5, force},
	"kgf": {9.80665, force},
	"lbf": {4.4482216152605, force},

	// pressure
	"Pa":   {1, pressure},
	"kPa":  {1e3, pressure},
	"MPa":  {1e6, pressure},
	"bar":  {1e5, pressure},
	"atm":  {101325, pressure},
	"psi":  {6894.757293168361, pressure},
	"torr": {101325.0 / 760, pressure},
	"mmHg": {133.322387415, pressure},

	// energy
	"J":    {1, energy},
	"kJ":   {1e3, energy},
	"MJ":   {1e6, energy},
	"cal":  {4.184, energy},
	"kcal": {4184, energy},
	"Btu":  {1055.05585262, energy},
	"Wh":   {3600, energy},
	"kWh":  {3.6e6, energy},
	"eV":   {1.602176634e-19, energy},

	// power
	"W":  {1, power},
	"kW": {1e3, power},
	"MW": {1e6, power},
	"hp": {745.69987158227022, power},

	// electrical
	"C":   {1, charge},
	"V":   {1, voltage},
	"ohm": {1, ohm},
}

// Names returns every known unit name in ascending order.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Parse reads a unit expression.
//
// Errors:
//   - ErrMalformed for an empty expression, a second '/', a dangling '-'
//     or a bad exponent;
//   - ErrUnknownUnit for a name outside the table.
func Parse(expression string) (Unit, error) {
	s := strings.TrimSpace(expression)
	num, den, divided := strings.Cut(s, "/")
	if divided && strings.Contains(den, "/") {
		return Unit{}, fmt.Errorf("%w: %q has more than one '/'", ErrMalformed, expression)
	}
	u, err := product(num, divided)
	if err != nil {
		return Unit{}, fmt.Errorf("%q: %w", expression, err)
	}
	if divided {
		d, err := product(den, false)
		if err != nil {
			return Unit{}, fmt.Errorf("%q: %w", expression, err)
		}
		u = u.times(d.pow(-1))
	}

	return u, nil
}

// product reads name[^p]{-name[^p]}. A lone "1" is allowed as a numerator.
func product(s string, numerator bool) (Unit, error) {
	if numerator && s == "1" {
		return Unit{Scale: 1}, nil
	}
	if s == "" {
		return Unit{}, ErrMalformed
	}
	u := Unit{Scale: 1}
	for i := 0; ; {
		j := i
		for j < len(s) && isLetter(s[j]) {
			j++
		}
		name := s[i:j]
		if name == "" {
			return Unit{}, fmt.Errorf("%w: expected a unit name at %d", ErrMalformed, i)
		}
		p := 1
		if j < len(s) && s[j] == '^' {
			k := j + 1
			if k < len(s) && s[k] == '-' {
				k++
			}
			for k < len(s) && s[k] >= '0' && s[k] <= '9' {
				k++
			}
			var err error
			if p, err = strconv.Atoi(s[j+1 : k]); err != nil {
				return Unit{}, fmt.Errorf("%w: exponent %q", ErrMalformed, s[j+1:k])
			}
			j = k
		}
		named, ok := table[name]
		if !ok {
			return Unit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, name)
		}
		u = u.times(named.pow(p))

		if j == len(s) {
			return u, nil
		}
		if s[j] != '-' || j+1 == len(s) {
			return Unit{}, fmt.Errorf("%w: unexpected %q at %d", ErrMalformed, s[j], j)
		}
		i = j + 1
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Factor returns k such that a quantity of x from-units is k·x to-units.
//
// Errors:
//   - any Parse error of either side;
//   - ErrIncompatible when the dimensions differ.
func Factor(from, to string) (float64, error) {
	a, err := Parse(from)
	if err != nil {
		return 0, err
	}
	b, err := Parse(to)
	if err != nil {
		return 0, err
	}
	if a.Dim != b.Dim {
		return 0, fmt.Errorf("%w: %s is %v, %s is %v", ErrIncompatible, from, a.Dim, to, b.Dim)
	}

	return a.Scale / b.Scale, nil
}
