package config

import (
	"fmt"
	"strings"
)

// ChannelTag is the category a raw paid-channel label maps to.
type ChannelTag int

const (
	ChannelUnknown ChannelTag = iota
	ChannelMedia
	ChannelReferrer
	ChannelSelfSourced
	ChannelHeadhunter
	ChannelTalentPool
	ChannelDelivery
)

// SourceTag is the talent-pool category a raw resume-source label maps to.
type SourceTag int

const (
	SourceUnknown SourceTag = iota
	SourceReactivation
	SourcePersonalNetwork
)

// Taxonomy holds every raw label the classifier recognises.
type Taxonomy struct {
	// Paid channel (second segment) labels
	MediaChannels       []string `json:"media_channels,omitempty" yaml:"media_channels,omitempty" validate:"required,dive,required"`
	ReferrerChannels    []string `json:"referrer_channels,omitempty" yaml:"referrer_channels,omitempty" validate:"required,dive,required"`
	SelfSourcedChannels []string `json:"self_sourced_channels,omitempty" yaml:"self_sourced_channels,omitempty" validate:"dive,required"`
	HeadhunterChannels  []string `json:"headhunter_channels,omitempty" yaml:"headhunter_channels,omitempty" validate:"required,dive,required"`
	TalentPoolChannels  []string `json:"talent_pool_channels,omitempty" yaml:"talent_pool_channels,omitempty" validate:"dive,required"`
	DeliveryChannels    []string `json:"delivery_channels,omitempty" yaml:"delivery_channels,omitempty" validate:"dive,required"`
	// STTeams are third-segment labels that mark a delivery hire as ST-delivered
	STTeams []string `json:"st_teams,omitempty" yaml:"st_teams,omitempty" validate:"dive,required"`

	// Signal-union media detection
	MediaLastChannels []string `json:"media_last_channels,omitempty" yaml:"media_last_channels,omitempty" validate:"dive,required"`
	MediaMarkers      []string `json:"media_markers,omitempty" yaml:"media_markers,omitempty" validate:"dive,required"`
	WebsitePrefix     string   `json:"website_prefix,omitempty" yaml:"website_prefix,omitempty"`

	// ReferrerViaMedia merges the same professional-network source seen through either media signal
	ReferrerViaMediaLabel string   `json:"referrer_via_media_label,omitempty" yaml:"referrer_via_media_label,omitempty"`
	ReferrerViaMediaRaw   []string `json:"referrer_via_media_raw,omitempty" yaml:"referrer_via_media_raw,omitempty" validate:"dive,required"`

	// Resume-source lists rolled into the talent pool
	ReactivationSources    []string `json:"reactivation_sources,omitempty" yaml:"reactivation_sources,omitempty" validate:"dive,required"`
	PersonalNetworkSources []string `json:"personal_network_sources,omitempty" yaml:"personal_network_sources,omitempty" validate:"dive,required"`

	// PlaceholderHomeBGs are referrer home-BG values that cannot be compared
	PlaceholderHomeBGs []string `json:"placeholder_home_bgs,omitempty" yaml:"placeholder_home_bgs,omitempty"`
}

// DefaultTaxonomy returns the labels used by the recruiting export.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		MediaChannels:          []string{"媒体"},
		ReferrerChannels:       []string{"伯乐"},
		SelfSourcedChannels:    []string{"千里马自主投递"},
		HeadhunterChannels:     []string{"猎头"},
		TalentPoolChannels:     []string{"人才库盘活"},
		DeliveryChannels:       []string{"交付团队"},
		STTeams:                []string{"ST"},
		MediaLastChannels:      []string{"媒体"},
		MediaMarkers:           []string{"媒体"},
		WebsitePrefix:          "官网",
		ReferrerViaMediaLabel:  "媒体-脉脉",
		ReferrerViaMediaRaw:    []string{"脉脉", "媒体-脉脉"},
		ReactivationSources:    []string{"内部人才盘活", "公司并购/投资公司或子公司转入", "外包/外聘转正"},
		PersonalNetworkSources: []string{"个人自有人脉", "公司外朋友推荐/候选人推荐"},
		PlaceholderHomeBGs:     []string{"不适用", "N/A", "子公司"},
	}
}

func (t Taxonomy) mergeWithDefaults(d Taxonomy) Taxonomy {
	list := func(v *[]string, def []string) {
		if len(*v) == 0 {
			*v = append([]string(nil), def...)
		}
	}
	list(&t.MediaChannels, d.MediaChannels)
	list(&t.ReferrerChannels, d.ReferrerChannels)
	list(&t.SelfSourcedChannels, d.SelfSourcedChannels)
	list(&t.HeadhunterChannels, d.HeadhunterChannels)
	list(&t.TalentPoolChannels, d.TalentPoolChannels)
	list(&t.DeliveryChannels, d.DeliveryChannels)
	list(&t.STTeams, d.STTeams)
	list(&t.MediaLastChannels, d.MediaLastChannels)
	list(&t.MediaMarkers, d.MediaMarkers)
	list(&t.ReferrerViaMediaRaw, d.ReferrerViaMediaRaw)
	list(&t.ReactivationSources, d.ReactivationSources)
	list(&t.PersonalNetworkSources, d.PersonalNetworkSources)
	list(&t.PlaceholderHomeBGs, d.PlaceholderHomeBGs)
	if t.WebsitePrefix == "" {
		t.WebsitePrefix = d.WebsitePrefix
	}
	if t.ReferrerViaMediaLabel == "" {
		t.ReferrerViaMediaLabel = d.ReferrerViaMediaLabel
	}
	return t
}

// Validate rejects labels claimed by more than one category.
func (t Taxonomy) Validate() error {
	seen := make(map[string]string)
	claim := func(group string, labels []string) error {
		for _, l := range labels {
			key := strings.TrimSpace(l)
			if prev, ok := seen[key]; ok && prev != group {
				return &ValidationError{
					Message: fmt.Sprintf("taxonomy label %q is listed in both %s and %s", key, prev, group),
				}
			}
			seen[key] = group
		}
		return nil
	}

	channelGroups := []struct {
		name   string
		labels []string
	}{
		{"media_channels", t.MediaChannels},
		{"referrer_channels", t.ReferrerChannels},
		{"self_sourced_channels", t.SelfSourcedChannels},
		{"headhunter_channels", t.HeadhunterChannels},
		{"talent_pool_channels", t.TalentPoolChannels},
		{"delivery_channels", t.DeliveryChannels},
	}
	for _, g := range channelGroups {
		if err := claim(g.name, g.labels); err != nil {
			return err
		}
	}

	seen = make(map[string]string)
	if err := claim("reactivation_sources", t.ReactivationSources); err != nil {
		return err
	}
	return claim("personal_network_sources", t.PersonalNetworkSources)
}

// Lookup is a compiled Taxonomy answering label → tag questions.
type Lookup struct {
	taxonomy     Taxonomy
	channels     map[string]ChannelTag
	sources      map[string]SourceTag
	st           map[string]bool
	mediaLast    map[string]bool
	viaMedia     map[string]bool
	placeholders map[string]bool
}

// Compile builds the lookup tables. Labels are matched after trimming spaces.
func (t Taxonomy) Compile() *Lookup {
	l := &Lookup{
		taxonomy:     t,
		channels:     make(map[string]ChannelTag),
		sources:      make(map[string]SourceTag),
		st:           toSet(t.STTeams),
		mediaLast:    toSet(t.MediaLastChannels),
		viaMedia:     toSet(t.ReferrerViaMediaRaw),
		placeholders: toSet(t.PlaceholderHomeBGs),
	}
	tag := func(labels []string, tag ChannelTag) {
		for _, s := range labels {
			l.channels[strings.TrimSpace(s)] = tag
		}
	}
	tag(t.MediaChannels, ChannelMedia)
	tag(t.ReferrerChannels, ChannelReferrer)
	tag(t.SelfSourcedChannels, ChannelSelfSourced)
	tag(t.HeadhunterChannels, ChannelHeadhunter)
	tag(t.TalentPoolChannels, ChannelTalentPool)
	tag(t.DeliveryChannels, ChannelDelivery)

	for _, s := range t.ReactivationSources {
		l.sources[strings.TrimSpace(s)] = SourceReactivation
	}
	for _, s := range t.PersonalNetworkSources {
		l.sources[strings.TrimSpace(s)] = SourcePersonalNetwork
	}
	return l
}

// Taxonomy returns the source labels.
func (l *Lookup) Taxonomy() Taxonomy { return l.taxonomy }

// Channel maps a paid channel segment to its tag.
func (l *Lookup) Channel(label string) ChannelTag {
	return l.channels[strings.TrimSpace(label)]
}

// Source maps a resume source to its talent-pool tag.
func (l *Lookup) Source(label string) SourceTag {
	return l.sources[strings.TrimSpace(label)]
}

// IsSTTeam reports whether a delivery sub-channel is the ST team.
func (l *Lookup) IsSTTeam(label string) bool {
	return l.st[strings.TrimSpace(label)]
}

// IsMediaLastChannel reports whether last_channel_1 marks a website/media hire.
func (l *Lookup) IsMediaLastChannel(label string) bool {
	return l.mediaLast[strings.TrimSpace(label)]
}

// HasMediaMarker reports whether a resume source mentions a media marker.
func (l *Lookup) HasMediaMarker(source string) bool {
	for _, m := range l.taxonomy.MediaMarkers {
		if m != "" && strings.Contains(source, m) {
			return true
		}
	}
	return false
}

// IsReferrerViaMedia reports whether a media sub-label is the merged professional-network source.
func (l *Lookup) IsReferrerViaMedia(label string) bool {
	return l.viaMedia[strings.TrimSpace(label)]
}

// IsPlaceholderHomeBG reports whether a referrer home BG cannot be compared.
func (l *Lookup) IsPlaceholderHomeBG(bg string) bool {
	bg = strings.TrimSpace(bg)
	return bg == "" || l.placeholders[bg]
}

func toSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, s := range labels {
		set[strings.TrimSpace(s)] = true
	}
	return set
}

// WithDefaults fills empty label lists from DefaultTaxonomy.
func (t Taxonomy) WithDefaults() Taxonomy {
	return t.mergeWithDefaults(DefaultTaxonomy())
}
