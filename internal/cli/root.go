// Package cli wires the keel commands: analyze, calibrate, and demo.
package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/keel/internal/config"
	"github.com/okian/keel/pkg/logger"
)

// Exit codes surfaced to calling scripts.
const (
	exitOK       = 0
	exitError    = 1
	exitCritical = 2
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

// exitCode is set by subcommands; Execute returns it to main.
var exitCode = exitOK

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keel",
		Short: "Predictive stability analysis for assignment schedules",
		Long: "keel scores a schedule snapshot against a utility strategy and reports its\n" +
			"Nash distance, stability tier, and predicted swap-request volume.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			cfg = loaded
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}
			return nil
		},
	}

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newCalibrateCmd())
	root.AddCommand(newDemoCmd())

	return root
}

// Execute runs the CLI and returns the process exit code. A critical schedule
// exits with a distinct code so publish scripts can gate on it.
func Execute() int {
	// Root context with cancel on SIGINT/SIGTERM; a cancelled analysis
	// reports a distinct cancelled outcome, never a partial report.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return exitError
	}
	return exitCode
}
