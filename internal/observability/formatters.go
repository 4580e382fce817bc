// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/channel-dashboard/internal/session"
	"github.com/jonathan/channel-dashboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDatasetSummary outputs what was loaded.
func (p *Printer) PrintDatasetSummary(sum session.Summary) {
	if !sum.Loaded {
		p.printBox("DATASET", "No dataset loaded")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:      %s\n", sum.Filename))
	sb.WriteString(fmt.Sprintf("Records:   %d", sum.Records))
	if sum.Excluded > 0 {
		sb.WriteString(fmt.Sprintf(" (%d excluded by BG)", sum.Excluded))
	}
	sb.WriteString("\n")
	if sum.FirstHire != nil && sum.LastHire != nil {
		sb.WriteString(fmt.Sprintf("Hired:     %s to %s\n",
			sum.FirstHire.Format("2006-01-02"), sum.LastHire.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("Categories: %s", joinLimited(sum.JobCategories, maxItemsToShow)))

	p.printBox("DATASET", sb.String())
}

// PrintReport outputs the bucket grid with each bucket's top detail lines.
func (p *Printer) PrintReport(report types.Report, grid []types.ChannelMetric) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Variant %s, %s mode, top %d\n", report.Variant, report.Mode, report.TopN))
	sb.WriteString(fmt.Sprintf("Attributed: %d of %d hires\n", report.AttributedHires, report.TotalRecords))

	if report.Empty() {
		sb.WriteString("\nNo matching data")
		p.printBox("CHANNEL REPORT", sb.String())
		return
	}

	for _, m := range grid {
		sb.WriteString(fmt.Sprintf("\n%-18s %4d  %6s\n", m.Label, m.HireCount, m.PercentageText))
		count := min(len(m.Details), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", m.Details[i]))
		}
		if len(m.Details) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.Details)-maxItemsToShow))
		}
	}

	p.printBox("CHANNEL REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptions outputs the selectable values per dimension.
func (p *Printer) PrintOptions(opts types.Options) {
	var sb strings.Builder
	for i, d := range types.Dimensions {
		values := opts.Get(d)
		sb.WriteString(fmt.Sprintf("%s (%d): %s", d, len(values), joinLimited(values, maxItemsToShow)))
		if i < len(types.Dimensions)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("FILTER OPTIONS", sb.String())
}

// PrintSupplyDemand outputs one line per category with latest, mean and slope.
func (p *Printer) PrintSupplyDemand(views []session.SupplyView) {
	if len(views) == 0 {
		return
	}

	var sb strings.Builder
	for i, v := range views {
		direction := "flat"
		switch {
		case v.Summary.Slope > 0.01:
			direction = "up"
		case v.Summary.Slope < -0.01:
			direction = "down"
		}
		sb.WriteString(fmt.Sprintf("%s: latest %.1f, mean %.2f, trend %s", v.Category, v.Summary.Latest, v.Summary.Mean, direction))
		if i < len(views)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SUPPLY / DEMAND", sb.String())
}

func joinLimited(values []string, limit int) string {
	if len(values) == 0 {
		return "-"
	}
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s, ... and %d more", strings.Join(values[:limit], ", "), len(values)-limit)
}
