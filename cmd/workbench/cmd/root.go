// Package cmd implements the workbench command line.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/workbench/pkg/logger"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "workbench",
		Short: "Inspect and seed the trading workbench from the shell",
		Long: `Workbench is the command line companion of the workbench server.

It provides tools for:
  - Printing the operations dashboard built from the mock dataset
  - Exporting the seeded state as JSON or msgpack
  - Loading sample bars into the market database
  - Running the display formatters on single values`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSnapshotCmd(opts),
		newSeedMarketCmd(opts),
		newFormatCmd(),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// logger writes to stderr so command output stays machine-readable
func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  o.logLevel,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
}
