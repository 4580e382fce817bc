package types

// Report is the classifier/aggregator output for one filtered record set.
type Report struct {
	Variant         Variant                  `json:"variant"`
	Mode            Mode                     `json:"mode"`
	TopN            int                      `json:"top_n"`
	TotalRecords    int                      `json:"total_records"`
	AttributedHires int                      `json:"attributed_hires"`
	Metrics         map[Bucket]ChannelMetric `json:"metrics"`
	// Comparison sets the two delivery-team buckets side by side
	Comparison PieData `json:"comparison"`
}

// Empty reports whether no bucket could be computed.
func (r Report) Empty() bool {
	return len(r.Metrics) == 0
}

// Grid returns one metric per bucket in display order. Buckets missing from
// Metrics come back zero-valued with the given fallback line.
func (r Report) Grid(labels map[Bucket]string, fallback string) []ChannelMetric {
	grid := make([]ChannelMetric, 0, len(Buckets))
	for _, b := range Buckets {
		if m, ok := r.Metrics[b]; ok {
			grid = append(grid, m)
			continue
		}
		grid = append(grid, ZeroMetric(b, labels[b], fallback))
	}
	return grid
}

// ZeroMetric is the placeholder for a bucket without hires.
func ZeroMetric(b Bucket, label, fallback string) ChannelMetric {
	return ChannelMetric{
		Bucket:         b,
		Label:          label,
		PercentageText: "0.0%",
		Details:        []string{fallback},
		Pie:            PieData{Labels: []string{}, Values: []int{}},
	}
}
