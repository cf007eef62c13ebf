// SPDX-License-Identifier: MIT

// Command riemann evaluates manifold operations described in YAML problem files.
package main

import (
	"os"

	"github.com/katalvlaran/riemann/cmd/riemann/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
