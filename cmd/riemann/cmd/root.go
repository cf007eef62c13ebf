// SPDX-License-Identifier: MIT

// Package cmd holds the riemann subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/riemann/internal/config"
	"github.com/katalvlaran/riemann/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// app is the state shared by the subcommands, filled in PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logging.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "riemann",
		Short: "Geometric operators on SPD and Cholesky manifolds",
		Long: `riemann evaluates exponential and logarithmic maps, distances, inner
products and parallel transport on the SPD manifold (affine-invariant or
Log-Cholesky metric) and on the Cholesky space.

Environment:
  RIEMANN_LOG_LEVEL  debug | info | warn | error
  RIEMANN_LOG_DEV    console logging
  RIEMANN_TOLERANCE  tolerance of the point/vector checks
  RIEMANN_WORKERS    cases evaluated concurrently (0 = GOMAXPROCS)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.AddCommand(newEvalCommand(a), newCheckCommand(a), newVersionCommand())

	return root
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "riemann: %v\n", err)
		return err
	}

	return nil
}

// init loads the environment configuration and the logger.
func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev})
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log

	return nil
}
