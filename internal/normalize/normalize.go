// Package normalize turns raw spreadsheet rows into canonical hire records.
package normalize

import (
	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/ingestion"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// Normalize converts every main-table row into a HireRecord, preserving order and count.
// referrers may be nil or empty; unmatched referrers keep an absent home BG.
// Malformed cells never fail normalization.
func Normalize(main, referrers *ingestion.Table, cols config.Columns) []types.HireRecord {
	if main.Len() == 0 {
		return []types.HireRecord{}
	}

	idx := columnIndex{
		hireDate:     main.Column(cols.HireDate),
		orgPath:      main.Column(cols.OrgPath),
		bg:           main.Column(cols.BG),
		paidChannel:  main.Column(cols.PaidChannel),
		resumeSource: main.Column(cols.ResumeSource),
		lastChannel1: main.Column(cols.LastChannel1),
		lastChannel2: main.Column(cols.LastChannel2),
		jobCategory:  main.Column(cols.JobCategory),
		jobTitle:     main.Column(cols.JobTitle),
		grade:        main.Column(cols.Grade),
	}
	homeBGs := ReferrerIndex(referrers, cols.ReferrerName, cols.ReferrerHomeBG)

	records := make([]types.HireRecord, main.Len())
	for i := range main.Rows {
		records[i] = normalizeRow(main, i, idx, homeBGs)
	}
	return records
}

type columnIndex struct {
	hireDate, orgPath, bg, paidChannel, resumeSource int
	lastChannel1, lastChannel2, jobCategory, jobTitle  int
	grade                                              int
}

func normalizeRow(t *ingestion.Table, row int, idx columnIndex, homeBGs map[string]string) types.HireRecord {
	text := func(col int) string { return CleanText(t.Value(row, col)) }

	rec := types.HireRecord{
		Row:          row + 1,
		OrgPath:      text(idx.orgPath),
		HireDate:     ParseDate(t.Value(row, idx.hireDate)),
		ResumeSource: text(idx.resumeSource),
		LastChannel1: text(idx.lastChannel1),
		LastChannel2: text(idx.lastChannel2),
		JobCategory:  text(idx.jobCategory),
		JobTitle:     text(idx.jobTitle),
		Grade:        text(idx.grade),
	}
	rec.BG = ResolveBG(text(idx.bg), rec.OrgPath)

	rec.PaidChannelPath = text(idx.paidChannel)
	parts := SplitChannelPath(rec.PaidChannelPath)
	rec.ChannelA, rec.ChannelB, rec.ChannelC, rec.ChannelD = parts[0], parts[1], parts[2], parts[3]

	rec.ReferrerName = rec.ChannelD
	if rec.ReferrerName != "" {
		rec.ReferrerHomeBG = homeBGs[rec.ReferrerName]
	}

	rec.GradeNumeric = ParseGrade(rec.Grade)
	return rec
}

// ExcludeBGs drops records whose BG is listed. The input slice is not modified.
func ExcludeBGs(records []types.HireRecord, bgs []string) []types.HireRecord {
	if len(bgs) == 0 {
		return records
	}
	drop := make(map[string]bool, len(bgs))
	for _, bg := range bgs {
		drop[bg] = true
	}

	kept := make([]types.HireRecord, 0, len(records))
	for _, r := range records {
		if !drop[r.BG] {
			kept = append(kept, r)
		}
	}
	return kept
}
