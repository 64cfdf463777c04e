package dataset

// Row maps column names to raw string values. Absent and empty values mean
// the same thing to every consumer: no usable value.
type Row map[string]string

// Table is an ordered sequence of rows sharing one header set. Header order
// is significant for display; the rows themselves do not preserve column
// order, the header slice does.
type Table struct {
	Headers []string
	Rows    []Row
}

// HasColumn reports whether the header set contains the given column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Value returns the trimmed-nothing raw cell value for a row index and
// column, or "" when the row or column is absent.
func (t *Table) Value(index int, column string) string {
	if index < 0 || index >= len(t.Rows) {
		return ""
	}
	return t.Rows[index][column]
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}
