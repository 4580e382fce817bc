// Package channels attributes hires to channel buckets and aggregates the per-bucket metrics.
package channels

import (
	"fmt"
	"strings"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// Classifier is one classification rule set.
type Classifier interface {
	// Variant names the rule set
	Variant() types.Variant
	// Classify returns the single bucket a record belongs to, or BucketNone
	Classify(r types.HireRecord) types.Bucket
	// MediaSource returns the breakdown label of a media hire and whether it is
	// the referrer-via-media source that must be merged across signals
	MediaSource(r types.HireRecord) (label string, viaReferrer bool)
}

// NewClassifier returns the rule set for variant.
func NewClassifier(variant types.Variant, lookup *config.Lookup) (Classifier, error) {
	switch variant {
	case types.VariantFieldCascade:
		return fieldCascade{lookup: lookup}, nil
	case types.VariantSignalUnion:
		return signalUnion{lookup: lookup}, nil
	}
	return nil, fmt.Errorf("unknown classification variant %q", variant)
}

// ClassifyAll classifies each record, index-aligned with records.
func ClassifyAll(c Classifier, records []types.HireRecord) []types.Bucket {
	out := make([]types.Bucket, len(records))
	for i, r := range records {
		out[i] = c.Classify(r)
	}
	return out
}

// fieldCascade decides the bucket from the paid channel path alone.
// Each record's second segment maps to at most one tag, so buckets cannot overlap.
type fieldCascade struct {
	lookup *config.Lookup
}

func (fieldCascade) Variant() types.Variant { return types.VariantFieldCascade }

func (c fieldCascade) Classify(r types.HireRecord) types.Bucket {
	switch c.lookup.Channel(r.ChannelB) {
	case config.ChannelMedia:
		return types.BucketMedia
	case config.ChannelReferrer, config.ChannelSelfSourced:
		return types.BucketReferrerNetwork
	case config.ChannelHeadhunter:
		return types.BucketHeadhunter
	case config.ChannelTalentPool:
		return types.BucketTalentPool
	case config.ChannelDelivery:
		return deliveryBucket(c.lookup, r)
	}
	return types.BucketNone
}

// MediaSource uses the most granular path segment available.
func (c fieldCascade) MediaSource(r types.HireRecord) (string, bool) {
	label := r.ChannelD
	if label == "" {
		label = r.ChannelC
	}
	via := c.lookup.IsReferrerViaMedia(r.ChannelD) || c.lookup.IsReferrerViaMedia(r.ChannelC)
	return label, via
}

// signalUnion reads media from two independent signals and the talent pool from
// the resume source; the remaining buckets follow the paid channel path.
// Rules are evaluated in bucket order and the first match wins.
type signalUnion struct {
	lookup *config.Lookup
}

func (signalUnion) Variant() types.Variant { return types.VariantSignalUnion }

func (c signalUnion) Classify(r types.HireRecord) types.Bucket {
	if c.websiteSignal(r) || c.resumeSignal(r) {
		return types.BucketMedia
	}

	tag := c.lookup.Channel(r.ChannelB)
	switch tag {
	case config.ChannelReferrer, config.ChannelSelfSourced:
		return types.BucketReferrerNetwork
	case config.ChannelHeadhunter:
		return types.BucketHeadhunter
	}

	if c.lookup.Source(r.ResumeSource) != config.SourceUnknown {
		return types.BucketTalentPool
	}

	if tag == config.ChannelDelivery {
		return deliveryBucket(c.lookup, r)
	}
	return types.BucketNone
}

// MediaSource prefers the website signal's second field, else the resume source
// with "/" removed. A record carrying the referrer-via-media source on either
// signal reports it once.
func (c signalUnion) MediaSource(r types.HireRecord) (string, bool) {
	website := c.websiteSignal(r)
	resume := c.resumeSignal(r)
	source := normalizeSource(r.ResumeSource)

	if (website && c.lookup.IsReferrerViaMedia(r.LastChannel2)) || (resume && c.lookup.IsReferrerViaMedia(source)) {
		return "", true
	}
	if website {
		if r.LastChannel2 == "" {
			return "", false
		}
		return c.lookup.Taxonomy().WebsitePrefix + "-" + r.LastChannel2, false
	}
	return source, false
}

func (c signalUnion) websiteSignal(r types.HireRecord) bool {
	return c.lookup.IsMediaLastChannel(r.LastChannel1)
}

func (c signalUnion) resumeSignal(r types.HireRecord) bool {
	return c.lookup.HasMediaMarker(r.ResumeSource)
}

func normalizeSource(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "/", ""))
}

func deliveryBucket(lookup *config.Lookup, r types.HireRecord) types.Bucket {
	if lookup.IsSTTeam(r.ChannelC) {
		return types.BucketSTDelivery
	}
	return types.BucketVendorDelivery
}
