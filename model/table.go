package model

import (
	"fmt"
	"strings"
)

// Table represents a table with cells organized in rows and columns
type Table struct {
	Rows     []Row
	Bordered bool // every cell carries a single black border on all sides
}

func (t *Table) Kind() NodeKind { return NodeKindTable }
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row.Cells {
			sb.WriteString(cell.Text)
			if j < len(row.Cells)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Row is an ordered sequence of cells
type Row struct {
	Cells []Cell
}

// Texts returns the text of every cell in order.
func (r Row) Texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text
	}
	return texts
}

// Cell represents a table cell
type Cell struct {
	Text string
	Bold bool
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([]Row, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i].Cells = make([]Cell, cols)
	}
	return table
}

// NewTableFromText builds a table from rows of cell text.
func NewTableFromText(rows ...[]string) *Table {
	table := &Table{Rows: make([]Row, len(rows))}
	for i, texts := range rows {
		cells := make([]Cell, len(texts))
		for j, text := range texts {
			cells[j] = Cell{Text: text}
		}
		table.Rows[i].Cells = cells
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0].Cells)
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row].Cells) {
		return nil
	}
	return &t.Rows[row].Cells[col]
}

// SetCell sets the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row].Cells) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row].Cells[col] = cell
	return nil
}

// AppendRow appends a copy of the given cells as a new row.
func (t *Table) AppendRow(cells []Cell) {
	row := Row{Cells: make([]Cell, len(cells))}
	copy(row.Cells, cells)
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Rows:     make([]Row, len(t.Rows)),
		Bordered: t.Bordered,
	}
	for i, row := range t.Rows {
		out.Rows[i].Cells = make([]Cell, len(row.Cells))
		copy(out.Rows[i].Cells, row.Cells)
	}
	return out
}

// ToMarkdown converts the table to markdown format
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 || len(t.Rows[0].Cells) == 0 {
		return ""
	}

	var sb strings.Builder
	header := t.Rows[0].Cells

	// Header row
	for j, cell := range header {
		sb.WriteString("| ")
		sb.WriteString(markdownCell(cell.Text))
		sb.WriteString(" ")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Separator
	for j := range header {
		sb.WriteString("|---")
		if j == len(header)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	// Data rows
	for i := 1; i < len(t.Rows); i++ {
		cells := t.Rows[i].Cells
		for j, cell := range cells {
			sb.WriteString("| ")
			sb.WriteString(markdownCell(cell.Text))
			sb.WriteString(" ")
			if j == len(cells)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func markdownCell(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", "\\|")
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row.Cells {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row.Cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
