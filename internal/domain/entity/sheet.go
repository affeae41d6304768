package entity

// Sheet one worksheet as the reader saw it: the header row and every row
// below it, in source order.
type Sheet struct {
	Name      string
	HeaderRow int // 0-based offset of Header in the source file
	Header    []string
	Rows      [][]string
}

// ReadOptions controls how a file is turned into a Sheet
type ReadOptions struct {
	HeaderRow int
	SheetName string // xlsx only; empty means the first sheet
}

// Width is the widest of the header and all rows.
func (s Sheet) Width() int {
	width := len(s.Header)
	for _, row := range s.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// HeaderAt returns the header text of column idx, or "" past the end.
func (s Sheet) HeaderAt(idx int) string {
	return CellAt(s.Header, idx)
}

// SourceRow maps an index into Rows to the 1-based row number a
// spreadsheet user would see.
func (s Sheet) SourceRow(i int) int {
	return s.HeaderRow + 2 + i
}

// CellAt is a bounds-safe cell read. Readers trim trailing empty cells, so
// short rows are normal.
func CellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
