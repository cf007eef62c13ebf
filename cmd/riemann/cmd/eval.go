// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/riemann/internal/problem"
)

func newEvalCommand(a *app) *cobra.Command {
	var (
		file    string
		workers int
	)
	c := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate every case of a problem file and print YAML results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer func() { _ = a.log.Sync() }()
			f, err := problem.Load(file)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			e := &problem.Evaluator{
				Workers: workers,
				Options: a.cfg.ManifoldOptions(),
				Log:     a.log,
			}
			a.log.Info("evaluating",
				zap.String("file", file),
				zap.String("manifold", f.Manifold),
				zap.String("metric", f.Metric),
				zap.Int("cases", len(f.Cases)),
			)
			results, err := e.EvaluateAll(cmd.Context(), f)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				a.log.Warn("cases failed", zap.Int("failed", failed))
			}

			return problem.Encode(cmd.OutOrStdout(), results)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "problem file (YAML)")
	c.Flags().IntVarP(&workers, "workers", "w", 0, "cases evaluated concurrently (0 = GOMAXPROCS)")
	_ = c.MarkFlagRequired("file")

	return c
}
