package ingestion

import "strings"

// Table is one sheet: a header row plus string cells.
// Rows may be shorter than Headers; missing trailing cells read as "".
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a table from raw sheet rows. The first non-blank row is the header;
// fully blank rows are skipped. Returns nil when rows contain no header.
func NewTable(name string, rows [][]string) *Table {
	t := &Table{Name: name}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if t.Headers == nil {
			t.Headers = make([]string, len(row))
			for i, h := range row {
				t.Headers[i] = cleanCell(h)
			}
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	if t.Headers == nil {
		return nil
	}
	return t
}

// Len returns the number of data rows. A nil table has none.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Column returns the index of a header, or -1. The first matching header wins.
func (t *Table) Column(name string) int {
	if t == nil || name == "" {
		return -1
	}
	name = strings.TrimSpace(name)
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a header exists.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) >= 0
}

// Value returns a trimmed cell, or "" when the row or column is out of range.
func (t *Table) Value(row, col int) string {
	if t == nil || col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return cleanCell(cells[col])
}

// cleanCell trims whitespace, including the non-breaking spaces spreadsheets like to keep
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if cleanCell(c) != "" {
			return false
		}
	}
	return true
}
