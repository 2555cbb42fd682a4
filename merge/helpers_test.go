package merge_test

import (
	"github.com/tsawler/docmerge/model"
)

func heading(text string) model.RawNode {
	return model.RawNode{
		Kind:  model.RawParagraph,
		Style: model.StyleMetadata{StyleID: "Heading1", StyleName: "heading 1", HeadingLevel: 1},
		Runs:  []model.Run{{Text: text}},
	}
}

func subheading(text string) model.RawNode {
	return model.RawNode{
		Kind:  model.RawParagraph,
		Style: model.StyleMetadata{StyleID: "Heading2", StyleName: "heading 2", HeadingLevel: 2},
		Runs:  []model.Run{{Text: text}},
	}
}

func para(text string) model.RawNode {
	return model.RawNode{Kind: model.RawParagraph, Runs: []model.Run{{Text: text}}}
}

func table(rows ...[]string) model.RawNode {
	return model.RawNode{Kind: model.RawTable, Table: model.NewTableFromText(rows...)}
}

func source(name string, nodes ...model.RawNode) *model.Source {
	return &model.Source{Name: name, Nodes: nodes}
}

// outline renders the body as one line per node for compact assertions.
func outline(doc *model.Document) []string {
	var out []string
	for _, n := range doc.Body {
		switch v := n.(type) {
		case *model.Heading:
			out = append(out, "H:"+v.Text)
		case *model.Subheading:
			out = append(out, "S:"+v.Text)
		case *model.Paragraph:
			out = append(out, "P:"+v.GetText())
		case *model.Table:
			line := "T:"
			for i, row := range v.Rows {
				if i > 0 {
					line += "/"
				}
				for j, c := range row.Cells {
					if j > 0 {
						line += ","
					}
					line += c.Text
				}
			}
			out = append(out, line)
		}
	}
	return out
}
