package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/keel/internal/domain/stability"
)

// calibrationResult is the printed refit output.
type calibrationResult struct {
	BaselineRate        float64 `json:"baseline_rate"`
	PressureCoefficient float64 `json:"pressure_coefficient"`
	RSquared            float64 `json:"r_squared"`
	Samples             int     `json:"samples"`
}

func newCalibrateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Refit the swap-volume prediction constants from history",
		Long: "Reads historical observations (measured nash distance, actual swap requests,\n" +
			"assignment count per published schedule) and fits the prediction line by\n" +
			"ordinary least squares, printing the new constants and the fit's R².",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read history file: %w", err)
			}
			var history []stability.Observation
			if err := json.Unmarshal(data, &history); err != nil {
				return fmt.Errorf("decode history file: %w", err)
			}

			fit, err := stability.Calibrate(history)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(calibrationResult{
				BaselineRate:        fit.BaselineRate,
				PressureCoefficient: fit.PressureCoefficient,
				RSquared:            fit.RSquared,
				Samples:             fit.Samples,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode calibration result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "calibration history to fit (JSON)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
