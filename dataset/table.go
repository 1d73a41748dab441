package dataset

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Table is a column-ordered tabular view of evaluation data.
// Columns keep insertion order; setting an existing column overwrites its
// values in place without changing its position.
type Table struct {
	order   []string
	columns map[string][]any
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string][]any)}
}

// SetColumn sets the values of the named column.
// A new name is appended to the column order; an existing name is
// overwritten in place.
func (t *Table) SetColumn(name string, values []any) {
	if _, ok := t.columns[name]; !ok {
		t.order = append(t.order, name)
	}
	t.columns[name] = values
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Column returns the values of the named column, or nil if absent.
func (t *Table) Column(name string) []any {
	return t.columns[name]
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.order)
}

// NumRows returns the length of the longest column.
func (t *Table) NumRows() int {
	rows := 0
	for _, values := range t.columns {
		if len(values) > rows {
			rows = len(values)
		}
	}
	return rows
}

// String renders the table with aligned columns, one header row and one
// row per record.
func (t *Table) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(t.order, "\t"))

	rows := t.NumRows()
	cells := make([]string, len(t.order))
	for i := 0; i < rows; i++ {
		for j, name := range t.order {
			values := t.columns[name]
			if i < len(values) {
				cells[j] = fmt.Sprintf("%v", values[i])
			} else {
				cells[j] = ""
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	w.Flush()
	return sb.String()
}
