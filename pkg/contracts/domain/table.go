package domain

import "strings"

// Table is an already-parsed tabular input: a header row plus data rows.
// Cells are kept as raw text; typing happens in the pipeline.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the named column. Header cells are compared
// after trimming surrounding whitespace and a UTF-8 BOM.
func (t Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the trimmed cell at row/col, or "" for ragged rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}
