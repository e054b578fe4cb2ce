package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dictmeta %s\n", app.BuildVersion())
	},
}
