package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
)

var (
	pronunciationAll   bool
	pronunciationForce bool
)

func init() {
	pronunciationCmd.Flags().BoolVar(&pronunciationAll, "all", false, "process every entry")
	pronunciationCmd.Flags().BoolVar(&pronunciationForce, "force", false, "regenerate existing IPA and audio (with --all)")
}

var pronunciationCmd = &cobra.Command{
	Use:   "pronunciation [WORD]",
	Short: "Generate IPA transcriptions and audio files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPronunciation,
}

func runPronunciation(cmd *cobra.Command, args []string) error {
	if err := requireWordOrAll(args, pronunciationAll); err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out := cmd.OutOrStdout()
		if pronunciationAll {
			stats, err := a.Pronunciation.All(ctx, pronunciationForce)
			printStats(out, "pronunciation", stats.Pronunciation)
			printStats(out, "audio", stats.Audio)
			return err
		}

		res, err := a.Pronunciation.Word(ctx, args[0])
		_, _ = fmt.Fprintf(out, "%s pronunciation %s, audio %s\n",
			labelColor.Sprint(args[0]+":"),
			formatOutcome(res.Pronunciation),
			formatOutcome(res.Audio),
		)
		return err
	})
}
