package normalize

import "github.com/jonathan/channel-dashboard/internal/ingestion"

// ReferrerIndex maps referrer name to home BG. On duplicate names the first row wins.
// A nil table or one missing either column yields an empty index.
func ReferrerIndex(t *ingestion.Table, nameCol, bgCol string) map[string]string {
	index := make(map[string]string)
	ni, bi := t.Column(nameCol), t.Column(bgCol)
	if ni < 0 || bi < 0 {
		return index
	}

	for row := 0; row < t.Len(); row++ {
		name := CleanText(t.Value(row, ni))
		if name == "" {
			continue
		}
		if _, seen := index[name]; seen {
			continue
		}
		index[name] = CleanText(t.Value(row, bi))
	}
	return index
}
