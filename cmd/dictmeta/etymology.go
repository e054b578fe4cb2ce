package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
)

var (
	etymologyAll   bool
	etymologyForce bool
)

func init() {
	etymologyCmd.Flags().BoolVar(&etymologyAll, "all", false, "process every entry")
	etymologyCmd.Flags().BoolVar(&etymologyForce, "force", false, "replace existing etymologies (with --all)")
}

var etymologyCmd = &cobra.Command{
	Use:   "etymology [WORD]",
	Short: "Fetch etymologies from Wiktionary into the entries",
	Long: `Fetch the etymology of one word (always replaced) or, with --all, of every
entry missing one. Entries with a manual override field are never touched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEtymology,
}

func runEtymology(cmd *cobra.Command, args []string) error {
	if err := requireWordOrAll(args, etymologyAll); err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		out := cmd.OutOrStdout()
		if etymologyAll {
			stats, err := a.Etymology.All(ctx, etymologyForce)
			printStats(out, "etymology", stats)
			return err
		}

		outcome, err := a.Etymology.Word(ctx, args[0])
		_, _ = fmt.Fprintf(out, "%s %s\n", labelColor.Sprint(args[0]+":"), formatOutcome(outcome))
		return err
	})
}

func requireWordOrAll(args []string, all bool) error {
	switch {
	case all && len(args) > 0:
		return fmt.Errorf("pass either WORD or --all, not both")
	case !all && len(args) == 0:
		return fmt.Errorf("missing WORD (or --all)")
	}
	return nil
}
