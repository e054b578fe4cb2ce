package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictmeta/internal/app"
	"github.com/heartmarshall/dictmeta/internal/etymology"
)

var explainCmd = &cobra.Command{
	Use:   "explain WORD",
	Short: "Show every stage of the etymology extraction for a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			tr, err := a.Etymology.Explain(ctx, args[0])
			if err != nil {
				return err
			}
			printTrace(cmd.OutOrStdout(), tr)
			return nil
		})
	},
}

func printTrace(w io.Writer, tr etymology.Trace) {
	stage := func(name, value string) {
		_, _ = fmt.Fprintf(w, "%s\n%s\n\n", labelColor.Sprint("== "+name+" =="), value)
	}

	if tr.Reason == etymology.ReasonNoSection {
		_, _ = fmt.Fprintf(w, "%s %s\n", failedColor.Sprint("absent:"), tr.Reason)
		return
	}
	stage("section", tr.Section)
	stage(fmt.Sprintf("resolved (%d passes)", tr.Passes), tr.Resolved)
	stage("flattened", tr.Flattened)
	stage("scrubbed", tr.Scrubbed)

	if tr.Found {
		_, _ = fmt.Fprintf(w, "%s %s\n", updatedColor.Sprint("result:"), tr.Result)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", failedColor.Sprint("absent:"), tr.Reason)
}
