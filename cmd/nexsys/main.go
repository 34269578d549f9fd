// SPDX-License-Identifier: MIT

// Command nexsys solves systems of equations written as plain-text or
// YAML problem documents.
package main

import (
	"os"

	"github.com/katalvlaran/nexsys/cmd/nexsys/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
