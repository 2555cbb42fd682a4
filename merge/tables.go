package merge

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docmerge/model"
)

// TableKey is the compatibility key of a table. Two tables merge iff their
// keys are equal.
type TableKey struct {
	header    string // concatenation of the quoted normalized header cells
	cols      int
	firstCell string
}

// Columns returns the column count component of the key.
func (k TableKey) Columns() int { return k.cols }

// Header returns the normalized header cells.
func (k TableKey) Header() []string {
	if k.cols == 0 {
		return nil
	}
	cells := make([]string, 0, k.cols)
	for rest := k.header; rest != ""; {
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			break
		}
		cell, _ := strconv.Unquote(q)
		cells = append(cells, cell)
		rest = rest[len(q):]
	}
	return cells
}

// TableResolver merges compatible tables inside one section.
// It is not safe for concurrent use.
type TableResolver struct {
	// IncludeFirstCell adds the trimmed text of cell (0,0) to the key.
	IncludeFirstCell bool
	Logger           *slog.Logger

	normalizer transform.Transformer
}

// NewTableResolver returns a TableResolver that keys on header and width.
func NewTableResolver() *TableResolver {
	return &TableResolver{}
}

// Normalize folds one header cell for comparison: NFC, trimmed, lower-cased.
func (r *TableResolver) Normalize(text string) string {
	if r.normalizer == nil {
		r.normalizer = transform.Chain(norm.NFC, cases.Lower(language.Und))
	}
	out, _, err := transform.String(r.normalizer, strings.TrimSpace(text))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(text))
	}
	return out
}

// Key computes the compatibility key of a table with at least one row.
func (r *TableResolver) Key(t *model.Table) TableKey {
	header := t.Rows[0].Cells
	var b strings.Builder
	for _, c := range header {
		b.WriteString(strconv.Quote(r.Normalize(c.Text)))
	}
	key := TableKey{header: b.String(), cols: len(header)}
	if r.IncludeFirstCell {
		key.firstCell = strings.TrimSpace(header[0].Text)
	}
	return key
}

// tableGroup is the set of tables sharing one key, in encounter order.
type tableGroup struct {
	key     TableKey
	tables  []*model.Table
	indices []int // table index within the section
}

// Resolve returns the section items with compatible tables merged.
// Non-table items keep their position; every table group appears once, at
// the position of its first member. Zero-row tables pass through alone.
func (r *TableResolver) Resolve(heading HeadingKey, section *Section) ([]Item, error) {
	groups := newOrderedMap[TableKey, *tableGroup]()
	firstOf := make(map[int]*tableGroup) // item index -> group led by it
	skip := make(map[int]bool)

	tableIdx := -1
	for i, item := range section.Items {
		t, ok := item.Node.(*model.Table)
		if !ok {
			continue
		}
		tableIdx++
		if len(t.Rows) == 0 {
			continue
		}
		if len(t.Rows[0].Cells) == 0 {
			return nil, r.mergeError(heading, section, tableIdx, "header row has no cells")
		}

		key := r.Key(t)
		g := groups.getOrCreate(key, func() *tableGroup {
			g := &tableGroup{key: key}
			firstOf[i] = g
			return g
		})
		if len(g.tables) > 0 {
			skip[i] = true
		}
		g.tables = append(g.tables, t)
		g.indices = append(g.indices, tableIdx)
	}

	if groups.len() == 0 {
		return section.Items, nil
	}

	out := make([]Item, 0, len(section.Items))
	for i, item := range section.Items {
		if skip[i] {
			continue
		}
		g, ok := firstOf[i]
		if !ok || len(g.tables) == 1 {
			out = append(out, item)
			continue
		}

		merged, err := r.mergeGroup(heading, section, g)
		if err != nil {
			return nil, err
		}
		out = append(out, Item{Node: merged, Source: item.Source})
	}

	return out, nil
}

// mergeGroup builds one table from the header of the first member and the
// data rows of every member.
func (r *TableResolver) mergeGroup(heading HeadingKey, section *Section, g *tableGroup) (*model.Table, error) {
	first := g.tables[0]
	cols := g.key.cols

	header := make([]model.Cell, cols)
	for i, c := range first.Rows[0].Cells {
		header[i] = model.Cell{Text: c.Text, Bold: true}
	}
	merged := &model.Table{Rows: []model.Row{{Cells: header}}}

	for n, t := range g.tables {
		for rowIdx, row := range t.Rows[1:] {
			if len(row.Cells) != cols {
				return nil, r.mergeError(heading, section, g.indices[n],
					fmt.Sprintf("row %d has %d cells, header has %d", rowIdx+1, len(row.Cells), cols))
			}
			merged.AppendRow(row.Cells)
		}
	}

	if r.Logger != nil {
		r.Logger.Debug("merged tables",
			"heading", heading.Text(),
			"subheading", section.Key.Text(),
			"tables", len(g.tables),
			"columns", cols,
			"rows", len(merged.Rows))
	}

	return merged, nil
}

func (r *TableResolver) mergeError(heading HeadingKey, section *Section, table int, reason string) error {
	return &MergeError{
		Heading:    heading.Text(),
		Subheading: section.Key.Text(),
		Table:      table,
		Reason:     reason,
	}
}
