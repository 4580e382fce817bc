package normalize

import (
	"strconv"
	"strings"
)

// nullMarkers are the textual renderings of a missing value left behind by spreadsheet exports
var nullMarkers = map[string]bool{
	"nan":  true,
	"none": true,
	"nat":  true,
	"null": true,
	"<na>": true,
}

// channelSegments is the depth of the composite paid channel path
const channelSegments = 4

// CleanText trims a categorical cell and maps null markers to "".
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if nullMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}

// ResolveBG prefers an explicit BG value, then the first "/" segment of the org path.
// A path without "/" is its own BG.
func ResolveBG(explicit, orgPath string) string {
	if explicit != "" {
		return explicit
	}
	first, _, _ := strings.Cut(orgPath, "/")
	return strings.TrimSpace(first)
}

// SplitChannelPath splits a composite "a-b-c-d" path into exactly four segments.
// The fourth segment keeps any further hyphens; missing segments are "".
func SplitChannelPath(path string) [channelSegments]string {
	var out [channelSegments]string
	path = CleanText(path)
	if path == "" {
		return out
	}
	for i, p := range strings.SplitN(path, "-", channelSegments) {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// ParseGrade returns the integer grade, or nil for labels like "M1" or "".
func ParseGrade(label string) *int {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	// Excel sometimes renders integer cells as "9.0"
	label = strings.TrimSuffix(label, ".0")
	n, err := strconv.Atoi(label)
	if err != nil {
		return nil
	}
	return &n
}
