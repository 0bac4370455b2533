package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"niclean/internal/batch"
)

// renderReport produces the end-of-batch table plus a one-line summary.
func renderReport(report *batch.Report, dryRun bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Source", "Destination", "Kind", "Outcome", "Detail"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	for i, res := range report.Results {
		tw.AppendRow(table.Row{
			i + 1,
			filepath.Base(res.Source),
			res.Destination,
			res.Kind.String(),
			res.Outcome.String(),
			res.Reason,
		})
	}

	var sb strings.Builder
	sb.WriteString(tw.Render())
	sb.WriteString("\n")
	sb.WriteString(summaryLine(report, dryRun))
	return sb.String()
}

func summaryLine(report *batch.Report, dryRun bool) string {
	parts := []string{fmt.Sprintf("%d file(s)", report.Total())}
	if dryRun {
		parts = append(parts, "dry run, nothing written")
	} else {
		parts = append(parts, fmt.Sprintf("%d stripped", report.Stripped))
		if report.SkippedStrip > 0 {
			parts = append(parts, fmt.Sprintf("%d copied unstripped", report.SkippedStrip))
		}
	}
	if report.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", report.Failed))
	}
	if report.Unsupported > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (unsupported)", report.Unsupported))
	}
	if report.Canceled {
		parts = append(parts, "canceled before finishing")
	}
	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), report.Duration().Round(10*time.Millisecond))
}
