// SPDX-License-Identifier: MIT

// Package config holds the settings shared by the nexsys command line:
// solver choice and limits, output rounding and logging.
//
// Settings are layered. Default() supplies the built-in values, an
// optional TOML file overrides them, and NEXSYS_* environment variables
// override the file:
//
//	method         = "newton"   # NEXSYS_METHOD
//	limit          = 300        # NEXSYS_LIMIT
//	tolerance      = 1e-5       # NEXSYS_TOLERANCE
//	min_delta      = 0.0        # NEXSYS_MIN_DELTA
//	pivoting       = true       # NEXSYS_PIVOTING
//	decimal_places = 3          # NEXSYS_DECIMAL_PLACES
//
//	[log]
//	level  = "info"             # NEXSYS_LOG_LEVEL
//	format = "text"             # NEXSYS_LOG_FORMAT
package config
