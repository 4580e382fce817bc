package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/channel-dashboard/internal/channels"
	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/session"
	"github.com/jonathan/channel-dashboard/internal/supply"
	"github.com/jonathan/channel-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := channels.Aggregate([]types.HireRecord{
		{ChannelB: "猎头", ChannelC: "猎聘A"},
		{ChannelB: "猎头", ChannelC: "猎聘B"},
		{ChannelB: "其他"},
	}, channels.Options{Variant: types.VariantFieldCascade, Taxonomy: config.DefaultTaxonomy()})
	display := config.DefaultDisplay()

	p.PrintReport(report, report.Grid(display.Buckets, display.NoHires))
	output := buf.String()

	assert.Contains(t, output, "CHANNEL REPORT")
	assert.Contains(t, output, "Variant A, relative mode, top 3")
	assert.Contains(t, output, "Attributed: 2 of 3 hires")
	assert.Contains(t, output, "Headhunter")
	assert.Contains(t, output, "100.0%")
	assert.Contains(t, output, "猎聘A: 50.0%")
	assert.Contains(t, output, "No hires via this channel")
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := channels.Aggregate(nil, channels.Options{Variant: types.VariantSignalUnion})
	p.PrintReport(report, nil)

	assert.Contains(t, buf.String(), "No matching data")
}

func TestPrintDatasetSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	first := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	p.PrintDatasetSummary(session.Summary{
		Loaded:        true,
		Filename:      "hires.xlsx",
		Records:       10,
		Excluded:      1,
		FirstHire:     &first,
		LastHire:      &last,
		JobCategories: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	output := buf.String()

	assert.Contains(t, output, "hires.xlsx")
	assert.Contains(t, output, "10 (1 excluded by BG)")
	assert.Contains(t, output, "2024-01-15 to 2024-05-30")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintDatasetSummary_NotLoaded(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDatasetSummary(session.Summary{})

	assert.Contains(t, buf.String(), "No dataset loaded")
}

func TestPrintOptions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintOptions(types.Options{
		BGs:    []string{"IEG", "CSIG"},
		Grades: []string{"9", "10"},
	})
	output := buf.String()

	assert.Contains(t, output, "FILTER OPTIONS")
	assert.Contains(t, output, "bgs (2): IEG, CSIG")
	assert.Contains(t, output, "job_titles (0): -")
}

func TestPrintSupplyDemand(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSupplyDemand(nil)
	assert.Empty(t, buf.String())

	p.PrintSupplyDemand([]session.SupplyView{
		{Series: supply.Series{Category: "技术"}, Summary: supply.Summarize([]float64{1, 2, 3})},
	})
	assert.Contains(t, buf.String(), "技术: latest 3.0, mean 2.00, trend up")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("渠", 80))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
