// SPDX-License-Identifier: MIT

package variable

import "sort"

// Vector maps unknown names to their current Variable.
type Vector map[string]Variable

// Clone returns an independent copy of the vector.
func (vec Vector) Clone() Vector {
	out := make(Vector, len(vec))
	for name, v := range vec {
		out[name] = v
	}

	return out
}

// Names returns the keys in ascending lexicographic order.
func (vec Vector) Names() []string {
	names := make([]string, 0, len(vec))
	for name := range vec {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Values returns name → value, suitable as evaluator bindings.
func (vec Vector) Values() map[string]float64 {
	out := make(map[string]float64, len(vec))
	for name, v := range vec {
		out[name] = v.Value()
	}

	return out
}

// Step applies v.Step(delta) to the named variable.
// Unknown names are ignored and reported as false.
func (vec Vector) Step(name string, delta float64) bool {
	v, ok := vec[name]
	if !ok {
		return false
	}
	v.Step(delta)
	vec[name] = v

	return true
}

// FromValues builds a Vector of unbounded variables, then restricts the
// names present in bounds. Names only in bounds start at their Low value.
func FromValues(values map[string]float64, bounds map[string]Domain) (Vector, error) {
	vec := make(Vector, len(values))
	for name, x := range values {
		vec[name] = New(x)
	}
	for name, d := range bounds {
		v, ok := vec[name]
		if !ok {
			v = New(d.Low)
		}
		bv, err := v.WithDomain(d)
		if err != nil {
			return nil, err
		}
		vec[name] = bv
	}

	return vec, nil
}
