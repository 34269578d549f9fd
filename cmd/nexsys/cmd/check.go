// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/incidence"
	"github.com/spf13/cobra"
)

// newCheckCmd parses a document, compiles every equation, resolves the
// parameters and reports the independent blocks without solving.
func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a problem document and list its unknowns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := root.load(); err != nil {
				return err
			}
			p, err := readProblem(args[0])
			if err != nil {
				return err
			}
			eval := expr.NewLua()
			for _, eq := range p.Equations {
				if _, err = eval.Compile(eq); err != nil {
					return err
				}
			}
			params, err := p.Resolve(eval)
			if err != nil {
				return err
			}
			blocks, err := incidence.Blocks(cmd.Context(), p.Equations, params)
			if err != nil {
				return err
			}
			unknowns, err := p.Unknowns()
			if err != nil {
				return err
			}

			names := make([]string, len(p.Params))
			for i, prm := range p.Params {
				names[i] = prm.Name
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "equations: %d\n", len(p.Equations))
			fmt.Fprintf(out, "unknowns:  %d (%s)\n", len(unknowns), strings.Join(unknowns, ", "))
			fmt.Fprintf(out, "params:    %d (%s)\n", len(names), strings.Join(names, ", "))
			fmt.Fprintf(out, "blocks:    %d\n", len(blocks))
			for i, b := range blocks {
				eqs := make([]string, len(b.Equations))
				for j, eq := range b.Equations {
					eqs[j] = strconv.Itoa(eq + 1)
				}
				fmt.Fprintf(out, "  %d: equations %s; unknowns %s", i+1, strings.Join(eqs, ", "), strings.Join(b.Unknowns, ", "))
				if !b.Square() {
					fmt.Fprint(out, " (not square)")
				}
				fmt.Fprintln(out)
			}
			if len(unknowns) != len(p.Equations) {
				fmt.Fprintln(out, "note: system is not square; only the ascent method applies")
			}

			return nil
		},
	}
}
