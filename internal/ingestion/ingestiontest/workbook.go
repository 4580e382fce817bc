// Package ingestiontest builds in-memory workbooks for tests.
package ingestiontest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet to write: a name and its rows (header first).
type Sheet struct {
	Name string
	Rows [][]any
}

// XLSX renders sheets into workbook bytes. The first sheet becomes the main sheet.
func XLSX(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("new sheet %s: %v", s.Name, err)
		}

		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %s: %v", r+1, s.Name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// DatedXLSX renders a hires sheet with one typed date cell per number format,
// each row dated when and styled with the built-in format numFmts[i].
func DatedXLSX(t testing.TB, when time.Time, numFmts ...int) []byte {
	t.Helper()

	const sheet = "hires"
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	header := HireHeader
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}

	for i, numFmt := range numFmts {
		row := i + 2
		date, _ := excelize.CoordinatesToCellName(1, row)
		org, _ := excelize.CoordinatesToCellName(2, row)

		if err := f.SetCellValue(sheet, date, when); err != nil {
			t.Fatalf("write date: %v", err)
		}
		style, err := f.NewStyle(&excelize.Style{NumFmt: numFmt})
		if err != nil {
			t.Fatalf("new style %d: %v", numFmt, err)
		}
		if err := f.SetCellStyle(sheet, date, date, style); err != nil {
			t.Fatalf("style %s: %v", date, err)
		}
		if err := f.SetCellValue(sheet, org, "IEG/Studio A"); err != nil {
			t.Fatalf("write org: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteXLSX writes the workbook into dir and returns its path.
func WriteXLSX(t testing.TB, dir, name string, sheets ...Sheet) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, XLSX(t, sheets...), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// HireHeader is the default export header row.
var HireHeader = []any{"入职日期", "组织全路径", "付费渠道", "简历来源", "最后渠道1", "最后渠道2", "职位类", "专业职位", "职级&管理职级"}

// ReferrerHeader is the default referrer mapping header row.
var ReferrerHeader = []any{"伯乐名称", "伯乐所在BG"}

// SampleSheets returns a small realistic export covering every bucket.
func SampleSheets() []Sheet {
	rows := [][]any{HireHeader}
	add := func(date, org, channel, source, last1, last2, category, title, grade string) {
		rows = append(rows, []any{date, org, channel, source, last1, last2, category, title, grade})
	}
	add("2024-01-15", "IEG/Studio A/Client", "付费-媒体-招聘网站-BOSS直聘", "", "", "", "技术", "后台开发", "9")
	add("2024-02-01", "IEG/Studio B", "付费-伯乐-内推-张三", "", "", "", "技术", "前端开发", "10")
	add("2024-02-20", "CSIG/Cloud", "付费-伯乐-内推-李四", "", "", "", "产品", "产品经理", "11")
	add("2024-03-05", "CSIG/Cloud", "付费-千里马自主投递", "", "", "", "技术", "后台开发", "8")
	add("2024-03-18", "IEG/Studio A", "付费-猎头-猎聘A", "", "", "", "技术", "算法", "12")
	add("2024-04-02", "WXG", "付费-猎头-猎聘B", "", "", "", "设计", "视觉设计", "9")
	add("2024-04-22", "IEG/Studio C", "免费-其他", "内部人才盘活", "", "", "技术", "后台开发", "10")
	add("2024-05-09", "CSIG/Map", "免费-其他", "个人自有人脉", "", "", "产品", "产品经理", "M1")
	add("2024-05-30", "IEG/Studio A", "付费-交付团队-ST-华南组", "", "", "", "技术", "测试", "7")
	add("not a date", "WXG/Pay", "付费-交付团队-外部供应商", "", "", "", "技术", "测试", "")
	add("2024-06-12", "Overseas Functional System/EU", "付费-媒体-招聘网站-LinkedIn", "", "", "", "技术", "后台开发", "10")
	return []Sheet{
		{Name: "hires", Rows: rows},
		{Name: "bole", Rows: [][]any{
			ReferrerHeader,
			{"张三", "IEG"},
			{"李四", "IEG"},
			{"张三", "WXG"},
		}},
	}
}
