// Package export renders tabular data as downloadable files.
package export

// Table is a header plus rows of cell values. Every row has len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}
