// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"

	"github.com/katalvlaran/nexsys/variable"
	"gopkg.in/yaml.v3"
)

// document mirrors the YAML form. params is kept as a node so that its
// key order, which decides evaluation order, survives decoding.
type document struct {
	Equations []string             `yaml:"equations"`
	Params    yaml.Node            `yaml:"params"`
	Guess     map[string]float64   `yaml:"guess"`
	Bounds    map[string][]float64 `yaml:"bounds"`
}

// ParseYAML reads the YAML form of a problem document.
func ParseYAML(data []byte) (*Problem, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	p := newProblem()
	for i, eq := range doc.Equations {
		eq, err := convertUnits(eq)
		if err != nil {
			return nil, fmt.Errorf("%w: equation %d: %v", ErrSyntax, i+1, err)
		}
		p.Equations = append(p.Equations, eq)
	}
	for name, x := range doc.Guess {
		p.Guesses[name] = x
	}
	for name, b := range doc.Bounds {
		if len(b) != 2 {
			return nil, fmt.Errorf("%w: bounds for %s need [low, high], got %d values", ErrSyntax, name, len(b))
		}
		d := variable.Domain{Low: b[0], High: b[1]}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("bounds for %s: %w", name, err)
		}
		p.Bounds[name] = d
	}

	params, err := paramsFromNode(&doc.Params)
	if err != nil {
		return nil, err
	}
	p.Params = params
	if err = p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// paramsFromNode walks a mapping node in document order. Scalar values
// are kept as expression text, so "9.81" and "2 * g" both work.
func paramsFromNode(n *yaml.Node) ([]Param, error) {
	if n.Kind == 0 {
		return nil, nil // field absent
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: params must be a mapping (line %d)", ErrSyntax, n.Line)
	}
	out := make([]Param, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: param %s must be a number or an expression (line %d)", ErrSyntax, k.Value, v.Line)
		}
		text, err := convertUnits(v.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: param %s: %v (line %d)", ErrSyntax, k.Value, err, v.Line)
		}
		out = append(out, Param{Name: k.Value, Expr: text})
	}

	return out, nil
}
