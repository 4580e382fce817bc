package types

import (
	"fmt"
	"strings"
)

// Bucket is a top-level channel category a hire is attributed to.
type Bucket string

const (
	BucketNone            Bucket = ""
	BucketMedia           Bucket = "media"
	BucketReferrerNetwork Bucket = "referrer_network"
	BucketHeadhunter      Bucket = "headhunter"
	BucketTalentPool      Bucket = "talent_pool"
	BucketSTDelivery      Bucket = "st_delivery"
	BucketVendorDelivery  Bucket = "vendor_delivery"
)

// Buckets lists every attributable bucket in display order.
var Buckets = []Bucket{
	BucketMedia,
	BucketReferrerNetwork,
	BucketHeadhunter,
	BucketTalentPool,
	BucketSTDelivery,
	BucketVendorDelivery,
}

// Variant names a complete classification rule set.
type Variant string

const (
	// VariantFieldCascade classifies purely on the paid channel path segments.
	VariantFieldCascade Variant = "A"
	// VariantSignalUnion combines last-channel and resume-source signals.
	VariantSignalUnion Variant = "B"
)

// Mode selects the percentage denominator.
type Mode string

const (
	// ModeRelative divides by attributed hires only.
	ModeRelative Mode = "relative"
	// ModeAbsolute divides by every filtered hire.
	ModeAbsolute Mode = "absolute"
)

// ParseVariant accepts "A"/"B" case-insensitively, plus the long names.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "field", "field-cascade":
		return VariantFieldCascade, nil
	case "b", "signal", "signal-union":
		return VariantSignalUnion, nil
	}
	return "", fmt.Errorf("unknown classification variant %q (want A or B)", s)
}

// ParseMode accepts "relative" or "absolute" case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRelative:
		return ModeRelative, nil
	case ModeAbsolute:
		return ModeAbsolute, nil
	}
	return "", fmt.Errorf("unknown aggregation mode %q (want relative or absolute)", s)
}

// DefaultTopN is the headhunter slice count used when none is configured.
func (v Variant) DefaultTopN() int {
	if v == VariantSignalUnion {
		return 5
	}
	return 3
}
