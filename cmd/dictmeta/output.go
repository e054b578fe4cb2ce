package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/heartmarshall/dictmeta/internal/domain"
)

var (
	updatedColor = color.New(color.FgGreen, color.Bold)
	skippedColor = color.New(color.FgYellow)
	absentColor  = color.New(color.FgBlue)
	failedColor  = color.New(color.FgRed, color.Bold)
	labelColor   = color.New(color.Bold)
)

func outcomeColor(o domain.EnrichmentOutcome) *color.Color {
	switch o {
	case domain.OutcomeUpdated:
		return updatedColor
	case domain.OutcomeSkipped:
		return skippedColor
	case domain.OutcomeAbsent:
		return absentColor
	default:
		return failedColor
	}
}

func formatOutcome(o domain.EnrichmentOutcome) string {
	return outcomeColor(o).Sprint(o.String())
}

func printStats(w io.Writer, title string, s domain.RunStats) {
	_, _ = fmt.Fprintf(w, "%s %d entries: %s %d, %s %d, %s %d, %s %d\n",
		labelColor.Sprint(title+":"), s.Total,
		updatedColor.Sprint("updated"), s.Updated,
		skippedColor.Sprint("skipped"), s.Skipped,
		absentColor.Sprint("absent"), s.Absent,
		failedColor.Sprint("failed"), s.Failed,
	)
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %v\n", failedColor.Sprint("error:"), err)
}
