package session

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/channel-dashboard/internal/channels"
	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/filtering"
	"github.com/jonathan/channel-dashboard/internal/options"
	"github.com/jonathan/channel-dashboard/internal/supply"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// ReportRequest is one report computation. Empty mode, variant and top_n use
// the configured defaults.
type ReportRequest struct {
	Criteria types.FilterCriteria `json:"criteria"`
	Mode     string               `json:"mode,omitempty" validate:"omitempty,oneof=relative absolute"`
	Variant  string               `json:"variant,omitempty"`
	TopN     int                  `json:"top_n,omitempty" validate:"gte=0,lte=50"`
	// Drilldown names the talent-pool category to expand; empty selects the overview
	Drilldown string `json:"drilldown,omitempty"`
}

// Validate checks the request fields and the filter criteria.
func (r *ReportRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &RequestError{Message: "report request", Cause: err}
	}
	if r.Variant != "" {
		if _, err := types.ParseVariant(r.Variant); err != nil {
			return &RequestError{Message: "report request", Cause: err}
		}
	}
	if err := r.Criteria.Validate(); err != nil {
		return &RequestError{Message: "report request", Cause: err}
	}
	return nil
}

// ReportResult bundles the report with its render-ready views.
type ReportResult struct {
	Report types.Report `json:"report"`
	// Grid always carries all six buckets in display order
	Grid         []types.ChannelMetric `json:"grid"`
	DrilldownPie types.PieData         `json:"drilldown_pie"`
	// Filtered is the record count after filtering
	Filtered int `json:"filtered"`
}

// ComputeReport filters records and aggregates them under cfg.
func ComputeReport(records []types.HireRecord, req ReportRequest, cfg config.Config) (ReportResult, error) {
	if err := req.Validate(); err != nil {
		return ReportResult{}, err
	}

	mode, variant, err := cfg.ReportDefaults()
	if err != nil {
		return ReportResult{}, fmt.Errorf("failed to resolve report defaults: %w", err)
	}
	if req.Mode != "" {
		mode = types.Mode(req.Mode)
	}
	if req.Variant != "" {
		variant, _ = types.ParseVariant(req.Variant)
	}
	topN := cfg.Report.TopN
	if req.TopN > 0 {
		topN = req.TopN
	}

	filtered := filtering.Apply(records, req.Criteria)
	display := cfg.Display.WithDefaults()
	report := channels.Aggregate(filtered, channels.Options{
		Variant:  variant,
		Mode:     mode,
		TopN:     topN,
		Taxonomy: cfg.Taxonomy,
		Display:  display,
	})

	result := ReportResult{
		Report:       report,
		Grid:         report.Grid(display.Buckets, display.NoHires),
		DrilldownPie: types.PieData{Labels: []string{}, Values: []int{}},
		Filtered:     len(filtered),
	}
	if m, ok := report.Metrics[types.BucketTalentPool]; ok && m.Drilldown != nil {
		result.DrilldownPie = m.Drilldown.Select(req.Drilldown)
	}
	return result, nil
}

// Report computes a report over the current dataset.
func (s *Session) Report(req ReportRequest) (ReportResult, error) {
	ds, err := s.Current()
	if err != nil {
		return ReportResult{}, err
	}
	return ComputeReport(ds.Records, req, s.cfg)
}

// Options enumerates the filter choices for sel over the current dataset.
func (s *Session) Options(sel types.Selection) (types.Options, error) {
	ds, err := s.Current()
	if err != nil {
		return types.Options{}, err
	}
	return options.Enumerate(ds.Records, sel), nil
}

// SupplyView is one category's series with its summary.
type SupplyView struct {
	supply.Series
	Summary supply.Summary `json:"summary"`
}

// SupplyDemand returns the views for the requested categories, or all when none are given.
// Unknown categories are reported in missing.
func (s *Session) SupplyDemand(categories []string) (views []SupplyView, missing []string, err error) {
	ds, err := s.Current()
	if err != nil {
		return nil, nil, err
	}
	if len(categories) == 0 {
		categories = options.Enumerate(ds.Records, types.Selection{}).JobCategories
	}

	views = []SupplyView{}
	missing = []string{}
	for _, c := range categories {
		series, ok := ds.Supply[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		views = append(views, SupplyView{Series: series, Summary: supply.Summarize(series.Values)})
	}
	return views, missing, nil
}
