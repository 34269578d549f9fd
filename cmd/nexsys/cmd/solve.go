// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/problem"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errUnsolved marks a run whose solver stopped without converging. The
// solution is still printed.
var errUnsolved = errors.New("not converged")

func newSolveCmd(root *rootOptions) *cobra.Command {
	var method string
	c := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a problem document and print the solution as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if method != "" {
				cfg.Method = method
			}
			m, err := cfg.SolveMethod()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}

			p, err := readProblem(args[0])
			if err != nil {
				return err
			}
			opts := cfg.SolveOptions()
			opts.Observer = solution.LogObserver(logger)
			logger.Info("solving",
				"file", args[0],
				"method", m.String(),
				"equations", len(p.Equations),
				"params", len(p.Params))

			sol, err := p.Solve(cmd.Context(), expr.NewLua(), m, opts)
			if err != nil {
				return err
			}
			logger.Info("finished",
				"status", sol.Status.String(),
				"iterations", sol.Iterations,
				"residual", sol.Residual)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(sol.Round(cfg.DecimalPlaces)); err != nil {
				return err
			}
			if err = enc.Close(); err != nil {
				return err
			}
			if sol.Status != solution.Converged {
				logger.Warn("solution did not converge", "warning", sol.Warning)
				return fmt.Errorf("%w: %s", errUnsolved, sol.Warning)
			}

			return nil
		},
	}
	c.Flags().StringVarP(&method, "method", "m", "",
		fmt.Sprintf("solver: %s or %s (overrides config)", problem.Newton, problem.Ascent))

	return c
}
