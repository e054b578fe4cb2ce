package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
)

var cleanupDelete bool

func init() {
	cleanupAudioCmd.Flags().BoolVar(&cleanupDelete, "delete", false, "delete orphaned files (default is a dry run)")
}

var cleanupAudioCmd = &cobra.Command{
	Use:   "cleanup-audio",
	Short: "Report or remove audio files no entry links to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			report, err := a.Maintenance.CleanupAudio(ctx, cleanupDelete)
			if err != nil {
				return err
			}
			if len(report.Orphans) == 0 {
				_, _ = fmt.Fprintln(out, "No orphaned audio files found.")
				return nil
			}

			_, _ = fmt.Fprintf(out, "Found %d orphaned audio file(s):\n", len(report.Orphans))
			for _, name := range report.Orphans {
				_, _ = fmt.Fprintf(out, "  %s\n", name)
			}
			if cleanupDelete {
				_, _ = fmt.Fprintf(out, "\n%s %d file(s).\n", failedColor.Sprint("Deleted"), report.Deleted)
			} else {
				_, _ = fmt.Fprintf(out, "\n%s use --delete to remove these files.\n", skippedColor.Sprint("Dry run:"))
			}
			return nil
		})
	},
}

var migrateSeeAlsoCmd = &cobra.Command{
	Use:   "migrate-see-also",
	Short: "Move **See also:** links from entry bodies to the see_also header",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			stats, err := a.Maintenance.MigrateSeeAlso(ctx)
			printStats(cmd.OutOrStdout(), "see also", stats)
			return err
		})
	},
}
