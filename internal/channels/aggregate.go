package channels

import (
	"fmt"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// Options configures one aggregation run.
type Options struct {
	Variant types.Variant
	Mode    types.Mode
	// TopN bounds the headhunter and delivery distributions; zero uses the variant default
	TopN     int
	Taxonomy config.Taxonomy
	Display  config.Display
}

// Aggregate classifies records and computes one metric per non-empty bucket.
// An empty record set, or one where no record lands in any bucket, yields a
// report with no metrics; callers render the zero grid via Report.Grid.
// An unrecognised variant falls back to the signal-union rules, and empty
// taxonomy lists use the default labels.
func Aggregate(records []types.HireRecord, opts Options) types.Report {
	lookup := opts.Taxonomy.WithDefaults().Compile()
	classifier, err := NewClassifier(opts.Variant, lookup)
	if err != nil {
		classifier = signalUnion{lookup: lookup}
	}
	mode := opts.Mode
	if mode == "" {
		mode = types.ModeRelative
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = classifier.Variant().DefaultTopN()
	}

	a := &aggregator{
		classifier: classifier,
		lookup:     lookup,
		display:    opts.Display.WithDefaults(),
		topN:       topN,
	}
	return a.run(records, mode)
}

type aggregator struct {
	classifier Classifier
	lookup     *config.Lookup
	display    config.Display
	topN       int
}

func (a *aggregator) run(records []types.HireRecord, mode types.Mode) types.Report {
	report := types.Report{
		Variant:      a.classifier.Variant(),
		Mode:         mode,
		TopN:         a.topN,
		TotalRecords: len(records),
		Metrics:      make(map[types.Bucket]types.ChannelMetric),
		Comparison:   types.PieData{Labels: []string{}, Values: []int{}},
	}

	groups := make(map[types.Bucket][]types.HireRecord, len(types.Buckets))
	for _, r := range records {
		if b := a.classifier.Classify(r); b != types.BucketNone {
			groups[b] = append(groups[b], r)
			report.AttributedHires++
		}
	}
	if report.AttributedHires == 0 {
		return report
	}

	denominator := report.AttributedHires
	if mode == types.ModeAbsolute {
		denominator = report.TotalRecords
	}

	for _, b := range types.Buckets {
		group := groups[b]
		if len(group) == 0 {
			report.Metrics[b] = types.ZeroMetric(b, a.display.BucketLabel(b), a.display.NoHires)
			continue
		}
		pct := percent(len(group), denominator)
		m := types.ChannelMetric{
			Bucket:         b,
			Label:          a.display.BucketLabel(b),
			HireCount:      len(group),
			Percentage:     pct,
			PercentageText: formatPercent(pct),
		}
		a.breakdown(&m, group)
		report.Metrics[b] = m
	}

	report.Comparison.Add(a.display.BucketLabel(types.BucketSTDelivery), len(groups[types.BucketSTDelivery]))
	report.Comparison.Add(a.display.BucketLabel(types.BucketVendorDelivery), len(groups[types.BucketVendorDelivery]))
	return report
}

func (a *aggregator) breakdown(m *types.ChannelMetric, group []types.HireRecord) {
	switch m.Bucket {
	case types.BucketMedia:
		m.Details, m.Pie = a.mediaBreakdown(group)
	case types.BucketReferrerNetwork:
		m.Details, m.Pie = a.referrerBreakdown(group)
	case types.BucketHeadhunter:
		m.Details, m.Pie = a.topBreakdown(group, func(r types.HireRecord) string { return r.ChannelC })
	case types.BucketTalentPool:
		m.Drilldown = a.talentPoolBreakdown(group)
		m.Pie = m.Drilldown.Overview
		m.Details = detailLines(m.Pie, len(group))
	case types.BucketSTDelivery:
		m.Details, m.Pie = a.topBreakdown(group, func(r types.HireRecord) string { return r.ChannelD })
	case types.BucketVendorDelivery:
		m.Details, m.Pie = a.topBreakdown(group, func(r types.HireRecord) string { return r.ChannelC })
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

func detailLine(label string, part, whole int) string {
	return fmt.Sprintf("%s: %s", label, formatPercent(percent(part, whole)))
}

func detailLines(pie types.PieData, whole int) []string {
	lines := make([]string, 0, len(pie.Labels))
	for i, label := range pie.Labels {
		lines = append(lines, detailLine(label, pie.Values[i], whole))
	}
	return lines
}
