package channels

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/filtering"
	"github.com/jonathan/channel-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(variant types.Variant, mode types.Mode) Options {
	return Options{
		Variant:  variant,
		Mode:     mode,
		Taxonomy: config.DefaultTaxonomy(),
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// mixed covers every bucket under the signal-union rules plus two unattributed hires.
func mixed() []types.HireRecord {
	return []types.HireRecord{
		{Row: 1, BG: "IEG", LastChannel1: "媒体", LastChannel2: "Boss直聘", HireDate: date(2024, 1, 5)},
		{Row: 2, BG: "IEG", ResumeSource: "媒体/拉勾", HireDate: date(2024, 1, 9)},
		{Row: 3, BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "IEG", HireDate: date(2024, 2, 1)},
		{Row: 4, BG: "CSIG", ChannelB: "伯乐", ReferrerHomeBG: "IEG", HireDate: date(2024, 2, 3)},
		{Row: 5, BG: "CSIG", ChannelB: "猎头", ChannelC: "猎聘A"},
		{Row: 6, BG: "CSIG", ResumeSource: "内部人才盘活", HireDate: date(2024, 3, 1)},
		{Row: 7, BG: "WXG", ChannelB: "交付团队", ChannelC: "ST", ChannelD: "ST-深圳"},
		{Row: 8, BG: "WXG", ChannelB: "交付团队", ChannelC: "外包商A"},
		{Row: 9, BG: "WXG", ChannelB: "其他"},
		{Row: 10, BG: "WXG"},
	}
}

func TestAggregate_ExampleFieldCascade(t *testing.T) {
	records := []types.HireRecord{
		{ChannelB: "media", ChannelD: "siteX"},
		{ChannelB: "media", ChannelD: "siteX"},
		{ChannelB: "headhunter", ChannelC: "agencyA"},
	}
	o := Options{
		Variant:  types.VariantFieldCascade,
		Mode:     types.ModeRelative,
		Taxonomy: config.Taxonomy{MediaChannels: []string{"media"}, HeadhunterChannels: []string{"headhunter"}},
	}

	report := Aggregate(records, o)
	require.Len(t, report.Metrics, len(types.Buckets))

	media := report.Metrics[types.BucketMedia]
	assert.Equal(t, 2, media.HireCount)
	assert.InDelta(t, 66.7, media.Percentage, 0.05)
	assert.Equal(t, "66.7%", media.PercentageText)
	assert.Equal(t, []string{"siteX: 100.0%"}, media.Details)

	hh := report.Metrics[types.BucketHeadhunter]
	assert.Equal(t, 1, hh.HireCount)
	assert.InDelta(t, 33.3, hh.Percentage, 0.05)
	assert.Equal(t, []string{"agencyA"}, hh.Pie.Labels)

	talent := report.Metrics[types.BucketTalentPool]
	assert.Equal(t, 0, talent.HireCount)
	assert.Zero(t, talent.Percentage)
	assert.Equal(t, []string{"No hires via this channel"}, talent.Details)
	assert.True(t, talent.Pie.Empty())
}

func TestAggregate_EmptyInput(t *testing.T) {
	for _, mode := range []types.Mode{types.ModeRelative, types.ModeAbsolute} {
		report := Aggregate(nil, opts(types.VariantSignalUnion, mode))
		assert.True(t, report.Empty())
		assert.Empty(t, report.Metrics)
		assert.Equal(t, 0, report.TotalRecords)

		grid := report.Grid(config.DefaultDisplay().Buckets, "none")
		require.Len(t, grid, len(types.Buckets))
		for _, m := range grid {
			assert.Equal(t, 0, m.HireCount)
			assert.Zero(t, m.Percentage)
			assert.Equal(t, []string{"none"}, m.Details)
		}
	}
}

func TestAggregate_NoAttributedHires(t *testing.T) {
	records := []types.HireRecord{{ChannelB: "其他"}, {}}

	report := Aggregate(records, opts(types.VariantSignalUnion, types.ModeAbsolute))
	assert.True(t, report.Empty())
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, 0, report.AttributedHires)
	assert.Empty(t, report.Comparison.Labels)
}

func TestAggregate_RelativePercentagesSumToHundred(t *testing.T) {
	for _, variant := range []types.Variant{types.VariantFieldCascade, types.VariantSignalUnion} {
		report := Aggregate(mixed(), opts(variant, types.ModeRelative))
		require.False(t, report.Empty(), "variant %s", variant)

		sum := 0.0
		for _, m := range report.Metrics {
			sum += m.Percentage
		}
		assert.InDelta(t, 100.0, sum, 1e-9, "variant %s", variant)
	}
}

func TestAggregate_AbsoluteNeverExceedsRelative(t *testing.T) {
	records := mixed()
	rel := Aggregate(records, opts(types.VariantSignalUnion, types.ModeRelative))
	abs := Aggregate(records, opts(types.VariantSignalUnion, types.ModeAbsolute))

	assert.Equal(t, 8, rel.AttributedHires)
	for _, b := range types.Buckets {
		assert.Equal(t, rel.Metrics[b].HireCount, abs.Metrics[b].HireCount, "bucket %s", b)
		assert.LessOrEqual(t, abs.Metrics[b].Percentage, rel.Metrics[b].Percentage, "bucket %s", b)
		if rel.Metrics[b].HireCount > 0 {
			assert.Less(t, abs.Metrics[b].Percentage, rel.Metrics[b].Percentage, "bucket %s", b)
		}
	}

	attributed := records[:8]
	rel = Aggregate(attributed, opts(types.VariantSignalUnion, types.ModeRelative))
	abs = Aggregate(attributed, opts(types.VariantSignalUnion, types.ModeAbsolute))
	for _, b := range types.Buckets {
		assert.Equal(t, rel.Metrics[b].Percentage, abs.Metrics[b].Percentage, "bucket %s", b)
	}
}

func TestAggregate_MediaSignalsCountedOnce(t *testing.T) {
	records := []types.HireRecord{
		{LastChannel1: "媒体", LastChannel2: "拉勾", ResumeSource: "媒体/拉勾"},
	}

	report := Aggregate(records, opts(types.VariantSignalUnion, types.ModeRelative))
	media := report.Metrics[types.BucketMedia]
	assert.Equal(t, 1, media.HireCount)
	assert.Equal(t, 1, media.Pie.Total())
	assert.Equal(t, []string{"官网-拉勾"}, media.Pie.Labels)
}

func TestAggregate_MediaReferrerViaMediaListedFirst(t *testing.T) {
	records := []types.HireRecord{
		{LastChannel1: "媒体", LastChannel2: "Boss直聘"},
		{LastChannel1: "媒体", LastChannel2: "Boss直聘"},
		{LastChannel1: "媒体", LastChannel2: "脉脉"},
		{ResumeSource: "媒体-脉脉"},
		{LastChannel1: "媒体", LastChannel2: "脉脉", ResumeSource: "媒体-脉脉"},
		{ResumeSource: "媒体/拉勾"},
	}

	report := Aggregate(records, opts(types.VariantSignalUnion, types.ModeRelative))
	media := report.Metrics[types.BucketMedia]
	assert.Equal(t, 6, media.HireCount)
	assert.Equal(t, []string{"媒体-脉脉", "官网-Boss直聘", "媒体拉勾"}, media.Pie.Labels)
	assert.Equal(t, []int{3, 2, 1}, media.Pie.Values)
	assert.Equal(t, []string{"媒体-脉脉: 50.0%", "官网-Boss直聘: 33.3%", "媒体拉勾: 16.7%"}, media.Details)
}

func TestAggregate_MediaUnspecifiedSource(t *testing.T) {
	records := []types.HireRecord{{ChannelB: "媒体"}}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	assert.Equal(t, []string{"Unspecified: 100.0%"}, report.Metrics[types.BucketMedia].Details)
}

func TestAggregate_ReferrerSplit(t *testing.T) {
	records := []types.HireRecord{
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "IEG"},
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "WXG"},
		{BG: "IEG", ChannelB: "千里马自主投递"},
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "IEG"},
	}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	m := report.Metrics[types.BucketReferrerNetwork]
	assert.Equal(t, 4, m.HireCount)
	assert.Equal(t, []string{"Home BG", "Other BG", "Self-sourced"}, m.Pie.Labels)
	assert.Equal(t, []int{2, 1, 1}, m.Pie.Values)
	assert.Equal(t, m.HireCount, m.Pie.Total(), "no placeholders: split covers the bucket")
	assert.Equal(t, []string{"Home BG: 50.0%", "Other BG: 25.0%", "Self-sourced: 25.0%"}, m.Details)
}

func TestAggregate_ReferrerSplitExcludesPlaceholders(t *testing.T) {
	records := []types.HireRecord{
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "IEG"},
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "不适用"},
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: ""},
		{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "子公司"},
		{BG: "IEG", ChannelB: "千里马自主投递"},
	}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	m := report.Metrics[types.BucketReferrerNetwork]
	assert.Equal(t, 5, m.HireCount)
	assert.Equal(t, []int{1, 0, 1}, m.Pie.Values)
	assert.Equal(t, []string{"Home BG: 50.0%", "Other BG: 0.0%", "Self-sourced: 50.0%"}, m.Details)
}

func TestAggregate_ReferrerSplitAllPlaceholders(t *testing.T) {
	records := []types.HireRecord{{BG: "IEG", ChannelB: "伯乐", ReferrerHomeBG: "N/A"}}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	m := report.Metrics[types.BucketReferrerNetwork]
	assert.Equal(t, 1, m.HireCount)
	assert.True(t, m.Pie.Empty())
	assert.Equal(t, []string{"Unspecified: 100.0%"}, m.Details)
}

func TestAggregate_HeadhunterTopN(t *testing.T) {
	var records []types.HireRecord
	for agency, n := range map[string]int{"A": 3, "B": 2, "C": 2, "D": 1, "E": 1} {
		for i := 0; i < n; i++ {
			records = append(records, types.HireRecord{ChannelB: "猎头", ChannelC: agency})
		}
	}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	hh := report.Metrics[types.BucketHeadhunter]
	assert.Equal(t, 3, report.TopN)
	assert.Equal(t, []string{"A", "B", "C", "Other"}, hh.Pie.Labels)
	assert.Equal(t, []int{3, 2, 2, 2}, hh.Pie.Values)
	assert.Equal(t, "A: 33.3%", hh.Details[0])

	o := opts(types.VariantFieldCascade, types.ModeRelative)
	o.TopN = 5
	report = Aggregate(records, o)
	hh = report.Metrics[types.BucketHeadhunter]
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, hh.Pie.Labels, "top-N covering the bucket has no Other slice")
}

func TestAggregate_DefaultTopNByVariant(t *testing.T) {
	records := []types.HireRecord{{ChannelB: "猎头", ChannelC: "A"}}

	assert.Equal(t, 3, Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative)).TopN)
	assert.Equal(t, 5, Aggregate(records, opts(types.VariantSignalUnion, types.ModeRelative)).TopN)
}

func TestAggregate_TalentPoolDrilldown(t *testing.T) {
	records := []types.HireRecord{
		{ResumeSource: "内部人才盘活"},
		{ResumeSource: "内部人才盘活"},
		{ResumeSource: "外包/外聘转正"},
		{ResumeSource: "个人自有人脉"},
	}

	report := Aggregate(records, opts(types.VariantSignalUnion, types.ModeRelative))
	m := report.Metrics[types.BucketTalentPool]
	assert.Equal(t, 4, m.HireCount)
	require.NotNil(t, m.Drilldown)
	assert.Equal(t, []string{"Talent reactivation", "Personal network"}, m.Drilldown.Overview.Labels)
	assert.Equal(t, []int{3, 1}, m.Drilldown.Overview.Values)
	assert.Equal(t, m.Drilldown.Overview, m.Pie)
	assert.Equal(t, []string{"Talent reactivation: 75.0%", "Personal network: 25.0%"}, m.Details)

	reactivation := m.Drilldown.Select("Talent reactivation")
	assert.Equal(t, []string{"内部人才盘活", "外包/外聘转正"}, reactivation.Labels)
	assert.Equal(t, []int{2, 1}, reactivation.Values)
	assert.Equal(t, m.Drilldown.Overview, m.Drilldown.Select("overview"))
}

func TestAggregate_TalentPoolUnspecifiedSource(t *testing.T) {
	records := []types.HireRecord{
		{ChannelB: "人才库盘活", ResumeSource: "个人自有人脉"},
		{ChannelB: "人才库盘活"},
	}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	d := report.Metrics[types.BucketTalentPool].Drilldown
	require.NotNil(t, d)
	assert.Equal(t, []string{"Talent reactivation", "Personal network", "Unspecified"}, d.Order)
	assert.Equal(t, []int{0, 1, 1}, d.Overview.Values)
	assert.Equal(t, []string{"Unspecified"}, d.Select("Unspecified").Labels)
	assert.Empty(t, d.Select("Talent reactivation").Labels)
}

func TestAggregate_DeliveryAndComparison(t *testing.T) {
	records := []types.HireRecord{
		{ChannelB: "交付团队", ChannelC: "ST", ChannelD: "ST-深圳"},
		{ChannelB: "交付团队", ChannelC: "ST", ChannelD: "ST-深圳"},
		{ChannelB: "交付团队", ChannelC: "ST"},
		{ChannelB: "交付团队", ChannelC: "外包商A"},
	}

	report := Aggregate(records, opts(types.VariantFieldCascade, types.ModeRelative))
	st := report.Metrics[types.BucketSTDelivery]
	assert.Equal(t, 3, st.HireCount)
	assert.Equal(t, []string{"ST-深圳", "Unspecified"}, st.Pie.Labels)

	vendor := report.Metrics[types.BucketVendorDelivery]
	assert.Equal(t, []string{"外包商A: 100.0%"}, vendor.Details)

	assert.Equal(t, []string{"ST delivery team", "Delivery vendor"}, report.Comparison.Labels)
	assert.Equal(t, []int{3, 1}, report.Comparison.Values)
}

func TestAggregate_DisplayOverrides(t *testing.T) {
	o := opts(types.VariantFieldCascade, types.ModeRelative)
	o.Display = config.Display{
		Buckets: map[types.Bucket]string{types.BucketHeadhunter: "猎头"},
		NoHires: "无",
	}

	report := Aggregate([]types.HireRecord{{ChannelB: "猎头", ChannelC: "A"}}, o)
	assert.Equal(t, "猎头", report.Metrics[types.BucketHeadhunter].Label)
	assert.Equal(t, "Media", report.Metrics[types.BucketMedia].Label)
	assert.Equal(t, []string{"无"}, report.Metrics[types.BucketMedia].Details)
}

func TestAggregate_UnknownVariantFallsBack(t *testing.T) {
	report := Aggregate(mixed(), opts("Z", types.ModeRelative))
	assert.Equal(t, types.VariantSignalUnion, report.Variant)
}

func TestAggregate_Idempotent(t *testing.T) {
	records := mixed()
	criteria := types.FilterCriteria{
		Selection: types.Selection{BGs: []string{"IEG", "CSIG", "WXG"}},
		Start:     types.DateBound{Year: 2024},
	}

	first := Aggregate(filtering.Apply(records, criteria), opts(types.VariantSignalUnion, types.ModeAbsolute))
	second := Aggregate(filtering.Apply(records, criteria), opts(types.VariantSignalUnion, types.ModeAbsolute))

	assert.False(t, first.Empty())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated aggregation differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, mixed(), records, "inputs are not mutated")
}

func TestAggregate_ZeroTaxonomyUsesDefaults(t *testing.T) {
	for _, variant := range []types.Variant{types.VariantFieldCascade, types.VariantSignalUnion} {
		withDefaults := Aggregate(mixed(), opts(variant, types.ModeRelative))
		zero := Aggregate(mixed(), Options{Variant: variant, Mode: types.ModeRelative})

		assert.Positive(t, zero.AttributedHires, string(variant))
		assert.Equal(t, withDefaults, zero, string(variant))
	}
}
