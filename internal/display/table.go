package display

import (
	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table lays out rows in aligned columns under a bold, ruled header.
type Table struct {
	title   string
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index drawn in the accent style, or -1.
	highlightRow int
}

// NewTable creates a table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row. Missing cells render empty, extra cells are dropped.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetTitle sets a line printed above the header, e.g. the location and method.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// SetHighlightRow marks one row (typically today) for the accent style.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Render returns the table indented by two spaces, one line per row.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.columnWidths()

	header := renderer.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("8"))

	blocks := []string{renderRow(t.headers, widths, header)}
	for i, row := range t.rows {
		style := renderer.NewStyle()
		if i == t.highlightRow {
			style = accentStyle
		}
		blocks = append(blocks, renderRow(row, widths, style))
	}

	body := renderer.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	if t.title != "" {
		body = "  " + Gray(t.title) + "\n\n" + body
	}
	return body + "\n"
}

// columnWidths is the printed width of the widest cell in each column.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], Width(cell))
			}
		}
	}
	return widths
}

// renderRow pads each cell to its column width with style and joins the
// cells side by side. Widths are printed widths, so Arabic labels line up
// with Latin ones.
func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, 0, 2*len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			parts = append(parts, columnGap)
		}
		parts = append(parts, style.Width(w).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
