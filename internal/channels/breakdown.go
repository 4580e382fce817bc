package channels

import (
	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/types"
)

func emptyPie() types.PieData {
	return types.PieData{Labels: []string{}, Values: []int{}}
}

func (a *aggregator) orUnspecified(label string) string {
	if label == "" {
		return a.display.Unspecified
	}
	return label
}

// mediaBreakdown lists media sources by count. The referrer-via-media source is
// merged across signals and placed first.
func (a *aggregator) mediaBreakdown(group []types.HireRecord) ([]string, types.PieData) {
	counts := newCounter()
	viaReferrer := 0
	for _, r := range group {
		label, via := a.classifier.MediaSource(r)
		if via {
			viaReferrer++
			continue
		}
		counts.add(a.orUnspecified(label))
	}

	pie := emptyPie()
	if viaReferrer > 0 {
		pie.Add(a.lookup.Taxonomy().ReferrerViaMediaLabel, viaReferrer)
	}
	for _, lc := range counts.sorted() {
		pie.Add(lc.label, lc.count)
	}
	return detailLines(pie, len(group)), pie
}

// referrerBreakdown splits referred hires by whether the referrer works in the
// hire's BG. Referrers with a placeholder home BG are left out of the split.
func (a *aggregator) referrerBreakdown(group []types.HireRecord) ([]string, types.PieData) {
	var home, other, self int
	for _, r := range group {
		if a.lookup.Channel(r.ChannelB) == config.ChannelSelfSourced {
			self++
			continue
		}
		switch {
		case a.lookup.IsPlaceholderHomeBG(r.ReferrerHomeBG):
		case r.ReferrerHomeBG == r.BG:
			home++
		default:
			other++
		}
	}

	valid := home + other + self
	pie := emptyPie()
	if valid == 0 {
		return []string{detailLine(a.display.Unspecified, len(group), len(group))}, pie
	}
	pie.Add(a.display.HomeBG, home)
	pie.Add(a.display.OtherBG, other)
	pie.Add(a.display.SelfSourced, self)
	return detailLines(pie, valid), pie
}

// topBreakdown keeps the topN most frequent values and folds the rest into Other.
func (a *aggregator) topBreakdown(group []types.HireRecord, field func(types.HireRecord) string) ([]string, types.PieData) {
	counts := newCounter()
	for _, r := range group {
		counts.add(a.orUnspecified(field(r)))
	}

	pie := emptyPie()
	kept := 0
	for i, lc := range counts.sorted() {
		if i >= a.topN {
			break
		}
		pie.Add(lc.label, lc.count)
		kept += lc.count
	}
	if rest := len(group) - kept; rest > 0 {
		pie.Add(a.display.Other, rest)
	}
	return detailLines(pie, len(group)), pie
}

// talentPoolBreakdown groups talent-pool hires by resume-source category and
// then by exact source within each category.
func (a *aggregator) talentPoolBreakdown(group []types.HireRecord) *types.Drilldown {
	reactivation := newCounter()
	personal := newCounter()
	unspecified := newCounter()
	for _, r := range group {
		source := a.orUnspecified(r.ResumeSource)
		switch a.lookup.Source(r.ResumeSource) {
		case config.SourceReactivation:
			reactivation.add(source)
		case config.SourcePersonalNetwork:
			personal.add(source)
		default:
			unspecified.add(source)
		}
	}

	d := &types.Drilldown{
		Overview:   emptyPie(),
		Categories: make(map[string]types.PieData),
		Order:      []string{},
	}
	category := func(name string, c *counter, always bool) {
		n := c.total()
		if n == 0 && !always {
			return
		}
		pie := emptyPie()
		for _, lc := range c.sorted() {
			pie.Add(lc.label, lc.count)
		}
		d.Overview.Add(name, n)
		d.Categories[name] = pie
		d.Order = append(d.Order, name)
	}
	category(a.display.Reactivation, reactivation, true)
	category(a.display.PersonalNetwork, personal, true)
	category(a.display.Unspecified, unspecified, false)
	return d
}
