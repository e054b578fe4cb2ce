package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/dictmeta/internal/app"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records")
}

var historyCmd = &cobra.Command{
	Use:   "history WORD",
	Short: "Print the ledger records of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			records, err := a.Ledger.ListByWord(ctx, args[0], historyLimit)
			if errors.Is(err, ledger.ErrDisabled) {
				return fmt.Errorf("%w: set LEDGER_DSN to record history", err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintf(out, "No records for %q.\n", args[0])
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(out, "%s  %-13s %-8s %s  %s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					r.Field, formatOutcome(r.Outcome), r.RunID.String()[:8], r.Detail)
			}
			return nil
		})
	},
}
