package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table is a simple header-and-rows table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes the table using aligned columns.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// TableFormatter formats data as an aligned text table.
type TableFormatter struct{}

// Format renders a *Table directly; anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch t := data.(type) {
	case *Table:
		return t.Render(w)
	case Table:
		return t.Render(w)
	default:
		return (&JSONFormatter{}).Format(w, data)
	}
}
