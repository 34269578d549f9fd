// SPDX-License-Identifier: MIT

// Package cmd holds the cobra commands of the nexsys binary.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/katalvlaran/nexsys/config"
	"github.com/katalvlaran/nexsys/problem"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	cfgFile   string
	verbose   bool
	logFormat string
}

// NewRootCmd builds the command tree. Output goes to the command's
// configured writers, so tests can capture it with SetOut and SetErr.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "nexsys",
		Short: "nexsys - numeric equation system solver",
		Long: `nexsys solves systems of equations with Newton-Raphson or
gradient ascent.

A problem document holds one item per line:
  g: 9.81               parameter, may use earlier parameters
  guess 10 for v        initial guess for an unknown
  keep h on [0, 100]    domain for an unknown
  v = g t               equation
  d: 12 [ft->m]         unit markup becomes a conversion factor
Lines starting with # are comments. Files ending in .yaml or .yml use the
YAML form (equations, params, guess, bounds).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (TOML)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every solver iteration")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(newSolveCmd(opts), newSweepCmd(opts), newCheckCmd(opts), newVersionCmd())

	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return err
	}

	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// load reads the config and applies the flag overrides.
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if o.verbose {
		cfg.Log.Level = slog.LevelDebug.String()
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger builds the run logger on w. Every record carries the run id.
func newLogger(w io.Writer, l config.Log) (*slog.Logger, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.EqualFold(l.Format, config.FormatJSON) {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	return slog.New(h).With(slog.String("run_id", uuid.NewString())), nil
}

// readProblem parses path, choosing the YAML form by extension.
func readProblem(path string) (*problem.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p *problem.Problem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = problem.ParseYAML(data)
	default:
		p, err = problem.Parse(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}
