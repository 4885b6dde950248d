package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/keel/internal/adapters/cache"
	"github.com/okian/keel/internal/app"
	"github.com/okian/keel/internal/domain/stability"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		path     string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a schedule snapshot and print its stability report",
		Long: "Reads a snapshot document (roster, assignments, preference records, swap\n" +
			"history), runs the Nash-distance analysis, and writes the report JSON to\n" +
			"stdout. Exits 2 when the schedule is CRITICAL so scripts can gate on it.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			strat, err := doc.Strategy(strategy)
			if err != nil {
				return err
			}

			analyzer := newAnalyzer()
			rpt, err := analyzer.Analyze(cmd.Context(), doc.Snapshot(), strat)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(rpt, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if rpt.StabilityLevel == stability.TierCritical {
				exitCode = exitCritical
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "snapshot document to analyze (JSON)")
	cmd.Flags().StringVar(&strategy, "strategy", "preference", "utility strategy: preference or trail")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// newAnalyzer builds an app.Analyzer from the loaded configuration.
func newAnalyzer() *app.Analyzer {
	opts := []app.Option{
		app.WithEpsilon(cfg.Epsilon),
		app.WithThresholds(stability.Thresholds{
			Stable:   cfg.StableBelow,
			Marginal: cfg.MarginalBelow,
			Unstable: cfg.UnstableBelow,
		}),
		app.WithPrediction(stability.Prediction{
			BaselineRate:        cfg.BaselineRate,
			PressureCoefficient: cfg.PressureCoefficient,
		}),
		app.WithTopK(cfg.TopK),
		app.WithNotableThreshold(cfg.NotableDeviations),
		app.WithParallelism(cfg.Parallelism),
		app.WithSwapCap(cfg.SwapDetailCap, cfg.ApproximateCounts),
	}
	if cfg.CacheEntries > 0 {
		opts = append(opts, app.WithCache(cache.NewInMemoryStore(cache.WithMaxEntries(cfg.CacheEntries))))
	}
	return app.New(opts...)
}
