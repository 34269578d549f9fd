// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/katalvlaran/nexsys/problem"
)

// ErrInvalid reports a setting outside its allowed range, or an unknown
// key in the TOML file.
var ErrInvalid = errors.New("config: invalid setting")

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "NEXSYS_"

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// maxDecimalPlaces keeps rounding within float64 precision.
const maxDecimalPlaces = 15

// Config is the full set of CLI settings.
type Config struct {
	Method        string  `toml:"method" env:"METHOD"`
	Limit         int     `toml:"limit" env:"LIMIT"`
	Tolerance     float64 `toml:"tolerance" env:"TOLERANCE"`
	MinDelta      float64 `toml:"min_delta" env:"MIN_DELTA"`
	Pivoting      bool    `toml:"pivoting" env:"PIVOTING"`
	DecimalPlaces int     `toml:"decimal_places" env:"DECIMAL_PLACES"`
	Log           Log     `toml:"log" envPrefix:"LOG_"`
}

// Log configures the slog handler built by the CLI.
type Log struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Method:        problem.Newton.String(),
		Limit:         problem.DefaultLimit,
		Tolerance:     problem.DefaultTolerance,
		Pivoting:      true,
		DecimalPlaces: 3,
		Log: Log{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load layers Default(), the TOML file at path (skipped when path is
// empty) and the environment, then validates the result.
//
// Errors:
//   - ErrInvalid for unknown TOML keys or out-of-range values;
//   - decode errors from the file or the environment, wrapped.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseEnv overlays NEXSYS_* environment variables onto target. Variables
// that are not set leave the existing values alone.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if _, err := problem.ParseMethod(c.Method); err != nil {
		return fmt.Errorf("%w: method %q", ErrInvalid, c.Method)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit %d must be positive", ErrInvalid, c.Limit)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %g must be positive and finite", ErrInvalid, c.Tolerance)
	}
	if !(c.MinDelta >= 0) || math.IsInf(c.MinDelta, 0) {
		return fmt.Errorf("%w: min_delta %g must be non-negative and finite", ErrInvalid, c.MinDelta)
	}
	if c.DecimalPlaces < 0 || c.DecimalPlaces > maxDecimalPlaces {
		return fmt.Errorf("%w: decimal_places %d not in [0, %d]", ErrInvalid, c.DecimalPlaces, maxDecimalPlaces)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}

// SolveMethod returns the configured solver.
func (c Config) SolveMethod() (problem.Method, error) {
	m, err := problem.ParseMethod(c.Method)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return m, nil
}

// SolveOptions maps the solver settings onto problem.SolveOptions.
func (c Config) SolveOptions() problem.SolveOptions {
	return problem.SolveOptions{
		Limit:      c.Limit,
		Tolerance:  c.Tolerance,
		MinDelta:   c.MinDelta,
		NoPivoting: !c.Pivoting,
	}
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}

	return lvl, nil
}
