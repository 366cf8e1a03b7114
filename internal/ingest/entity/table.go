package entity

// Table is a loaded CSV file: its header and data rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowCount is the number of data rows, header excluded.
func (t Table) RowCount() int {
	return len(t.Rows)
}
