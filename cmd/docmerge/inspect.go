package main

import (
	"fmt"
	"strings"

	"github.com/tsawler/docmerge/docx"
	"github.com/tsawler/docmerge/format"
	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
	docslog "github.com/tsawler/docmerge/slog"
)

const previewWidth = 60

// Run executes the inspect command. It prints one line per body node with
// the kind the classifier assigns it.
func (c *InspectCmd) Run(deps *Dependencies) error {
	if err := format.CheckInput(c.File); err != nil {
		return err
	}

	emphasis := merge.DefaultEmphasis
	names := c.Emphasis
	if names == nil {
		names = deps.Config.SubheadingEmphasis
	}
	if names != nil {
		e, err := merge.ParseEmphasis(names)
		if err != nil {
			return err
		}
		emphasis = e
	}

	r, err := docx.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	classifier := docslog.NewLoggingClassifier(&merge.StyleClassifier{Emphasis: emphasis}, deps.Logger)
	for i, raw := range r.Nodes() {
		node, err := classifier.Classify(raw)
		if err != nil {
			return &merge.ParseError{Doc: r.Name(), Source: 0, Node: i, Err: err}
		}
		fmt.Fprintf(deps.Stdout, "%4d  %-10s  %s\n", i, node.Kind(), describe(node, raw))
	}
	return nil
}

func describe(node model.Node, raw model.RawNode) string {
	switch n := node.(type) {
	case *model.Heading:
		return preview(n.Text) + styleNote(raw)
	case *model.Subheading:
		return preview(n.Text) + styleNote(raw)
	case *model.Table:
		header := ""
		if n.RowCount() > 0 {
			header = strings.Join(n.Rows[0].Texts(), " | ")
		}
		return fmt.Sprintf("%dx%d  %s", n.RowCount(), n.ColCount(), preview(header))
	case *model.Paragraph:
		text := preview(n.GetText())
		if images := n.ImageCount(); images > 0 {
			text += fmt.Sprintf("  [%d image(s)]", images)
		}
		return text
	}
	return ""
}

func styleNote(raw model.RawNode) string {
	if raw.Style.HeadingLevel > 0 {
		return fmt.Sprintf("  (%s)", raw.Style.StyleName)
	}
	return "  (emphasis)"
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > previewWidth {
		return string(r[:previewWidth-3]) + "..."
	}
	return s
}
