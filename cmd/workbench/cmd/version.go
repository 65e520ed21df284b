package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/workbench/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "workbench version %s\n", version.Version)
		},
	}
}
