package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/docmerge/model"
)

// TableParser handles parsing of DOCX tables.
//
// Parsed tables are laid out on the table grid: a cell spanning several grid
// columns repeats its text in each of them, and a vertically merged
// continuation cell repeats the text of the cell above. Every row of the
// result therefore has the same width.
type TableParser struct{}

// NewTableParser creates a new table parser.
func NewTableParser() *TableParser {
	return &TableParser{}
}

// ParseTable parses a table XML element into a grid-aligned model.Table.
func (tp *TableParser) ParseTable(tbl tableXML) *model.Table {
	if len(tbl.Rows) == 0 {
		return &model.Table{}
	}

	colCount := len(tbl.Grid.Cols)
	for _, row := range tbl.Rows {
		if w := tp.rowWidth(row); w > colCount {
			colCount = w
		}
	}

	table := model.NewTable(len(tbl.Rows), colCount)
	for rowIdx, row := range tbl.Rows {
		colIdx := parseSpan(row.Properties.GridBefore.Val, 0)

		for _, cell := range row.Cells {
			span := parseSpan(cell.Properties.GridSpan.Val, 1)

			parsed := tp.parseCell(cell)
			if cell.Properties.VMerge.continues() && rowIdx > 0 {
				if above := table.GetCell(rowIdx-1, colIdx); above != nil {
					parsed = *above
				}
			}

			for i := 0; i < span && colIdx < colCount; i++ {
				table.Rows[rowIdx].Cells[colIdx] = parsed
				colIdx++
			}
		}
	}

	return table
}

// rowWidth returns the number of grid columns a row occupies.
func (tp *TableParser) rowWidth(row tableRowXML) int {
	width := parseSpan(row.Properties.GridBefore.Val, 0)
	for _, cell := range row.Cells {
		width += parseSpan(cell.Properties.GridSpan.Val, 1)
	}
	return width
}

// parseCell parses a table cell. Paragraph texts are joined with newlines,
// empty paragraphs included. The cell is bold when every non-empty run is.
func (tp *TableParser) parseCell(cell tableCellXML) model.Cell {
	var (
		parts   []string
		bold    = true
		hasText bool
	)

	for _, para := range cell.Paragraphs {
		var sb strings.Builder
		for _, run := range para.Runs {
			sb.WriteString(run.Text)
			if strings.TrimSpace(run.Text) != "" {
				hasText = true
				bold = bold && run.Properties.Bold.On()
			}
		}
		parts = append(parts, sb.String())
	}

	return model.Cell{
		Text: strings.Join(parts, "\n"),
		Bold: hasText && bold,
	}
}

// parseSpan parses a span count, falling back to def for missing or invalid values.
func parseSpan(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
