// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/katalvlaran/nexsys/expr"
	"github.com/katalvlaran/nexsys/problem"
	"github.com/katalvlaran/nexsys/solution"
	"github.com/spf13/cobra"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
)

func newSweepCmd(root *rootOptions) *cobra.Command {
	var (
		method string
		req    problem.SweepSpec
	)
	c := &cobra.Command{
		Use:   "sweep FILE",
		Short: "Solve a document across a range of one parameter and print a table",
		Long: `sweep solves FILE once per sample of --param, evenly spaced from --from
to --to, and prints one row per sample. --param may name a parameter of the
document or one of its unknowns, which is then held fixed. Each converged
sample is the starting guess of the next one.`,
		Args: cobra.ExactArgs(1),
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
			logger.Info("sweeping",
				"file", args[0],
				"method", m.String(),
				"param", req.Param,
				"from", req.From,
				"to", req.To,
				"points", req.Points)

			res, err := p.Sweep(cmd.Context(), expr.NewLua(), m, opts, req)
			if err != nil {
				return err
			}

			var unsolved int
			rows := make([][]string, 0, len(res.Points))
			for _, pt := range res.Points {
				rounded := problem.SweepPoint{Value: pt.Value, Solution: pt.Solution.Round(cfg.DecimalPlaces)}
				row := []string{formatCell(pt.Value)}
				for _, name := range res.Report {
					v, _ := rounded.Lookup(name)
					row = append(row, formatCell(v))
				}
				rows = append(rows, append(row, pt.Solution.Status.String()))
				if pt.Solution.Status != solution.Converged {
					unsolved++
					logger.Warn("sample did not converge",
						"value", pt.Value,
						"warning", pt.Solution.Warning)
				}
			}

			headers := append(append([]string{res.Param}, res.Report...), "status")
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers(headers...).
				Rows(rows...)
			if _, err = fmt.Fprintln(cmd.OutOrStdout(), t.String()); err != nil {
				return err
			}
			logger.Info("finished", "points", len(res.Points), "unsolved", unsolved)
			if unsolved > 0 {
				return fmt.Errorf("%w: %d of %d samples", errUnsolved, unsolved, len(res.Points))
			}

			return nil
		},
	}
	c.Flags().StringVarP(&method, "method", "m", "",
		fmt.Sprintf("solver: %s or %s (overrides config)", problem.Newton, problem.Ascent))
	c.Flags().StringVarP(&req.Param, "param", "p", "", "name to sweep (required)")
	c.Flags().Float64Var(&req.From, "from", 0, "first sample")
	c.Flags().Float64Var(&req.To, "to", 1, "last sample")
	c.Flags().IntVarP(&req.Points, "points", "n", problem.DefaultSweepPoints, "number of samples, at least 2")
	c.Flags().StringSliceVarP(&req.Report, "report", "r", nil, "names to tabulate (default: every unknown)")
	_ = c.MarkFlagRequired("param")

	return c
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
