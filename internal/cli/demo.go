package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/keel/internal/domain/utility"
	"github.com/okian/keel/internal/fixture"
)

func newDemoCmd() *cobra.Command {
	var (
		participants int
		seed         int64
		strategy     string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a synthetic roster and analyze it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := fixture.NewGenerator(
				fixture.WithParticipants(participants),
				fixture.WithSeed(seed),
			)

			var strat utility.Strategy
			switch strategy {
			case "preference":
				strat = utility.NewPreferenceStrategy(gen.Profiles())
			case "trail":
				strat = utility.NewTrailStrategy(gen.History())
			default:
				return fmt.Errorf("unknown strategy %q (want preference or trail)", strategy)
			}

			analyzer := newAnalyzer()
			rpt, err := analyzer.Analyze(cmd.Context(), gen.Snapshot(), strat)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(rpt, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&participants, "participants", 12, "synthetic roster size")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for reproducible rosters")
	cmd.Flags().StringVar(&strategy, "strategy", "preference", "utility strategy: preference or trail")

	return cmd
}
