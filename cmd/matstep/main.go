// SPDX-License-Identifier: MIT

// Command matstep is an interactive chained matrix multiplication calculator
// that replays every multiply-accumulate step.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matstep/config"
	"github.com/katalvlaran/matstep/logging"
	"github.com/katalvlaran/matstep/tui"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "matstep",
		Short: "Chained matrix multiplication, one step at a time",
		Long: `matstep multiplies a chain of matrices left to right and records every
multiply-accumulate step so it can be replayed.

Run without arguments to open the interactive editor, or use "matstep calc"
to multiply matrices given on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				level = cfg.Logging.Level
			}
			log, closer, err := logging.OpenFile(level, cfg.Logging.File)
			if err != nil {
				return err
			}
			defer closer.Close()

			log.Info("starting editor", "version", version)
			return tui.Run(cmd.Context(), cfg, log)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $MATSTEP_CONFIG or ~/.config/matstep/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCalcCmd(),
	)

	return rootCmd
}

// loadConfig reads the configuration named by --config, if any.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
