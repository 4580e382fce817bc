package config

import "github.com/jonathan/channel-dashboard/internal/types"

// Display holds the human-readable labels emitted in reports.
type Display struct {
	Buckets         map[types.Bucket]string `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	HomeBG          string                  `json:"home_bg,omitempty" yaml:"home_bg,omitempty"`
	OtherBG         string                  `json:"other_bg,omitempty" yaml:"other_bg,omitempty"`
	SelfSourced     string                  `json:"self_sourced,omitempty" yaml:"self_sourced,omitempty"`
	Other           string                  `json:"other,omitempty" yaml:"other,omitempty"`
	Unspecified     string                  `json:"unspecified,omitempty" yaml:"unspecified,omitempty"`
	Reactivation    string                  `json:"reactivation,omitempty" yaml:"reactivation,omitempty"`
	PersonalNetwork string                  `json:"personal_network,omitempty" yaml:"personal_network,omitempty"`
	NoHires         string                  `json:"no_hires,omitempty" yaml:"no_hires,omitempty"`
}

// DefaultDisplay returns the English dashboard labels.
func DefaultDisplay() Display {
	return Display{
		Buckets: map[types.Bucket]string{
			types.BucketMedia:           "Media",
			types.BucketReferrerNetwork: "Referrer network",
			types.BucketHeadhunter:      "Headhunter",
			types.BucketTalentPool:      "Talent pool",
			types.BucketSTDelivery:      "ST delivery team",
			types.BucketVendorDelivery:  "Delivery vendor",
		},
		HomeBG:          "Home BG",
		OtherBG:         "Other BG",
		SelfSourced:     "Self-sourced",
		Other:           "Other",
		Unspecified:     "Unspecified",
		Reactivation:    "Talent reactivation",
		PersonalNetwork: "Personal network",
		NoHires:         "No hires via this channel",
	}
}

func (d Display) mergeWithDefaults(def Display) Display {
	buckets := make(map[types.Bucket]string, len(types.Buckets))
	for _, b := range types.Buckets {
		if v := d.Buckets[b]; v != "" {
			buckets[b] = v
		} else {
			buckets[b] = def.Buckets[b]
		}
	}
	d.Buckets = buckets

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&d.HomeBG, def.HomeBG)
	fill(&d.OtherBG, def.OtherBG)
	fill(&d.SelfSourced, def.SelfSourced)
	fill(&d.Other, def.Other)
	fill(&d.Unspecified, def.Unspecified)
	fill(&d.Reactivation, def.Reactivation)
	fill(&d.PersonalNetwork, def.PersonalNetwork)
	fill(&d.NoHires, def.NoHires)
	return d
}

// BucketLabel returns the display name of a bucket.
func (d Display) BucketLabel(b types.Bucket) string {
	if v := d.Buckets[b]; v != "" {
		return v
	}
	return string(b)
}

// WithDefaults fills any unset label from DefaultDisplay.
func (d Display) WithDefaults() Display {
	return d.mergeWithDefaults(DefaultDisplay())
}
