package ingestion

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the ingested content: the main hire sheet and the optional referrer mapping sheet.
type Workbook struct {
	Source string   `json:"source"`
	Sheets []string `json:"sheets"`
	Main   *Table   `json:"main"`
	// Referrers is never nil; it is empty when the sheet is absent
	Referrers *Table `json:"referrers"`
}

// LoadWorkbook reads a spreadsheet from disk. referrerSheet names the optional mapping sheet.
func LoadWorkbook(path, referrerSheet string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to open file %s", path),
			Cause:   err,
		}
	}
	defer func() { _ = f.Close() }()

	return ReadWorkbook(f, filepath.Base(path), referrerSheet)
}

// ReadWorkbook reads a spreadsheet stream. name supplies the extension that selects the format.
func ReadWorkbook(r io.Reader, name, referrerSheet string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".xlsx", ".xlsm":
		return readExcel(r, name, referrerSheet)
	case ".csv":
		return readCSV(r, name)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

func readExcel(r io.Reader, name, referrerSheet string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to parse workbook %s", name), Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &EmptyWorkbookError{Sheet: name}
	}

	// Raw values keep date cells as serial numbers whatever their display format.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read sheet %s", sheets[0]), Cause: err}
	}
	main := NewTable(sheets[0], rows)
	if main == nil {
		return nil, &EmptyWorkbookError{Sheet: sheets[0]}
	}

	wb := &Workbook{
		Source:    name,
		Sheets:    sheets,
		Main:      main,
		Referrers: &Table{Name: referrerSheet},
	}

	// The referrer sheet is optional: a missing or unreadable one leaves the lookup empty.
	if referrerSheet != "" && referrerSheet != sheets[0] && containsSheet(sheets, referrerSheet) {
		refRows, err := f.GetRows(referrerSheet)
		if err == nil {
			if t := NewTable(referrerSheet, refRows); t != nil {
				wb.Referrers = t
			}
		}
	}

	return wb, nil
}

func readCSV(r io.Reader, name string) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read %s", name), Cause: err}
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &LoadError{Message: fmt.Sprintf("malformed CSV at line %d", parseErr.Line), Cause: err}
		}
		return nil, &LoadError{Message: "failed to parse CSV", Cause: err}
	}

	sheet := strings.TrimSuffix(name, filepath.Ext(name))
	main := NewTable(sheet, rows)
	if main == nil {
		return nil, &EmptyWorkbookError{Sheet: sheet}
	}

	return &Workbook{
		Source:    name,
		Sheets:    []string{sheet},
		Main:      main,
		Referrers: &Table{},
	}, nil
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
