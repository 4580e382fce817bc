package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_SkipsBlankRows(t *testing.T) {
	rows := [][]string{
		{"", ""},
		{" Name ", "BG"},
		{"a", "IEG"},
		{"  ", ""},
		{"b"},
	}

	tbl := NewTable("s", rows)
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"Name", "BG"}, tbl.Headers)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "a", tbl.Value(0, 0))
	assert.Equal(t, "IEG", tbl.Value(0, 1))
	assert.Equal(t, "", tbl.Value(1, 1), "short rows read missing cells as empty")
}

func TestNewTable_NoHeader(t *testing.T) {
	assert.Nil(t, NewTable("s", nil))
	assert.Nil(t, NewTable("s", [][]string{{" "}}))
}

func TestTable_Column(t *testing.T) {
	tbl := &Table{Headers: []string{"A", "B", "A"}}

	assert.Equal(t, 0, tbl.Column("A"))
	assert.Equal(t, 1, tbl.Column(" B "))
	assert.Equal(t, -1, tbl.Column("C"))
	assert.Equal(t, -1, tbl.Column(""))
	assert.True(t, tbl.HasColumn("B"))
}

func TestTable_NilSafe(t *testing.T) {
	var tbl *Table

	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, -1, tbl.Column("A"))
	assert.Equal(t, "", tbl.Value(0, 0))
}

func TestTable_ValueCleansCells(t *testing.T) {
	tbl := &Table{Headers: []string{"A"}, Rows: [][]string{{" IEG "}}}

	assert.Equal(t, "IEG", tbl.Value(0, 0))
	assert.Equal(t, "", tbl.Value(5, 0))
	assert.Equal(t, "", tbl.Value(0, -1))
}
