package cli

import (
	"fmt"
	"io"
	"strings"
)

// PlainTable provides kubectl-style plain table output without box-drawing
// characters, so command output pipes cleanly into grep, awk and cut.
type PlainTable struct {
	headers     []string
	rows        [][]string
	widths      []int
	minPadding  int
	showHeaders bool
}

// NewPlainTable creates a plain table with the given column headers.
// Headers are rendered uppercase.
func NewPlainTable(headers ...string) *PlainTable {
	t := &PlainTable{
		minPadding:  3,
		showHeaders: true,
	}
	t.headers = make([]string, len(headers))
	t.widths = make([]int, len(headers))
	for i, h := range headers {
		upper := strings.ToUpper(h)
		t.headers[i] = upper
		t.widths[i] = len(upper)
	}
	return t
}

// SetNoHeaders suppresses the header row.
func (t *PlainTable) SetNoHeaders(noHeaders bool) {
	t.showHeaders = !noHeaders
}

// AddRow appends a data row. Missing cells render empty; extra cells are
// dropped.
func (t *PlainTable) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(cells) {
			row[i] = cells[i]
			if len(cells[i]) > t.widths[i] {
				t.widths[i] = len(cells[i])
			}
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table to the given writer.
func (t *PlainTable) Render(out io.Writer) {
	if len(t.headers) == 0 {
		return
	}
	if len(t.rows) == 0 && !t.showHeaders {
		return
	}
	if t.showHeaders {
		t.writeRow(out, t.headers)
	}
	for _, row := range t.rows {
		t.writeRow(out, row)
	}
}

func (t *PlainTable) writeRow(out io.Writer, row []string) {
	var b strings.Builder
	for i, cell := range row {
		if i == len(row)-1 {
			b.WriteString(cell)
			continue
		}
		fmt.Fprintf(&b, "%-*s", t.widths[i]+t.minPadding, cell)
	}
	fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
}
