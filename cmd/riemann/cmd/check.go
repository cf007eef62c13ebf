// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/riemann/internal/problem"
)

func newCheckCommand(a *app) *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "check",
		Short: "Validate the points and tangent vectors of every case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer func() { _ = a.log.Sync() }()
			f, err := problem.Load(file)
			if err != nil {
				return err
			}
			e := &problem.Evaluator{Options: a.cfg.ManifoldOptions(), Log: a.log}
			results := e.Check(f)
			if err = problem.Encode(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					return fmt.Errorf("check: case %q: %s", r.Name, r.Error)
				}
			}

			return nil
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "problem file (YAML)")
	_ = c.MarkFlagRequired("file")

	return c
}
