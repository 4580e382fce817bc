package types

// PieData is a chart-ready series. Labels and Values always have equal length.
type PieData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Add appends one slice.
func (p *PieData) Add(label string, value int) {
	p.Labels = append(p.Labels, label)
	p.Values = append(p.Values, value)
}

// Total sums the slice values.
func (p PieData) Total() int {
	total := 0
	for _, v := range p.Values {
		total += v
	}
	return total
}

// Empty reports whether the series has nothing to draw.
func (p PieData) Empty() bool {
	return len(p.Values) == 0 || p.Total() == 0
}

// Drilldown is a two-level breakdown: an overview plus one pie per category.
type Drilldown struct {
	Overview   PieData            `json:"overview"`
	Categories map[string]PieData `json:"categories"`
	// Order lists the category names in overview order
	Order []string `json:"order"`
}

// Select returns the pie for a category, or the overview for any other name.
func (d *Drilldown) Select(name string) PieData {
	if d == nil {
		return PieData{}
	}
	if p, ok := d.Categories[name]; ok {
		return p
	}
	return d.Overview
}

// ChannelMetric is the aggregated result for one bucket.
type ChannelMetric struct {
	Bucket         Bucket     `json:"bucket"`
	Label          string     `json:"label"`
	HireCount      int        `json:"hire_count"`
	Percentage     float64    `json:"percentage"`
	PercentageText string     `json:"percentage_text"`
	Details        []string   `json:"details"`
	Pie            PieData    `json:"pie"`
	Drilldown      *Drilldown `json:"drilldown,omitempty"`
}
