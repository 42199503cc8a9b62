package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// table writes left-aligned columns sized to their widest cell.
type table struct {
	headers []string
	rows    [][]string
	gap     int
}

func newTable(headers ...string) *table {
	return &table{headers: headers, gap: 2}
}

// addRow appends a row, padding or truncating it to the header count.
func (t *table) addRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// render writes the header, a rule and every row to w.
func (t *table) render(w io.Writer) error {
	if len(t.headers) == 0 {
		return nil
	}
	widths := t.widths()

	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}

	lines := append([][]string{t.headers, rule}, t.rows...)
	sep := strings.Repeat(" ", t.gap)
	for _, line := range lines {
		cells := make([]string, len(line))
		for i, cell := range line {
			cells[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, sep), " ")); err != nil {
			return err
		}
	}
	return nil
}
