package merge

import (
	"fmt"
	"strings"

	"github.com/tsawler/docmerge/model"
)

// Classifier labels one raw body node. Implementations must return exactly
// one of *model.Heading, *model.Subheading, *model.Paragraph or *model.Table.
type Classifier interface {
	Classify(node model.RawNode) (model.Node, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(node model.RawNode) (model.Node, error)

// Classify calls f(node).
func (f ClassifierFunc) Classify(node model.RawNode) (model.Node, error) {
	return f(node)
}

// Emphasis is a set of run formatting flags.
type Emphasis uint8

const (
	EmphasisBold Emphasis = 1 << iota
	EmphasisItalic
	EmphasisUnderline

	// DefaultEmphasis treats any of the three flags as a sub-heading marker.
	DefaultEmphasis = EmphasisBold | EmphasisItalic | EmphasisUnderline
)

// ParseEmphasis parses flag names ("bold", "italic", "underline").
// An empty list yields no flags.
func ParseEmphasis(names []string) (Emphasis, error) {
	var e Emphasis
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "bold", "b":
			e |= EmphasisBold
		case "italic", "i":
			e |= EmphasisItalic
		case "underline", "u":
			e |= EmphasisUnderline
		case "":
		default:
			return 0, fmt.Errorf("unknown emphasis %q", name)
		}
	}
	return e, nil
}

// Matches reports whether s sets at least one flag of e.
func (e Emphasis) Matches(s model.TextStyle) bool {
	return e&EmphasisBold != 0 && s.Bold ||
		e&EmphasisItalic != 0 && s.Italic ||
		e&EmphasisUnderline != 0 && s.Underline
}

func (e Emphasis) String() string {
	var names []string
	if e&EmphasisBold != 0 {
		names = append(names, "bold")
	}
	if e&EmphasisItalic != 0 {
		names = append(names, "italic")
	}
	if e&EmphasisUnderline != 0 {
		names = append(names, "underline")
	}
	return strings.Join(names, ",")
}

// StyleClassifier classifies by resolved heading level, falling back to the
// formatting of the first run.
//
// A level 1 style is a heading and deeper levels are sub-headings. A
// paragraph without a heading style whose first run carries one of the
// Emphasis flags is also a sub-heading. That fallback catches section labels
// typed as bold text, and it misreads a bolded ordinary sentence as a
// sub-heading.
type StyleClassifier struct {
	Emphasis Emphasis
}

// NewClassifier returns a StyleClassifier using DefaultEmphasis.
func NewClassifier() *StyleClassifier {
	return &StyleClassifier{Emphasis: DefaultEmphasis}
}

// Classify implements Classifier.
func (c *StyleClassifier) Classify(node model.RawNode) (model.Node, error) {
	switch node.Kind {
	case model.RawTable:
		if node.Table == nil {
			return nil, fmt.Errorf("table node has no table")
		}
		return node.Table, nil
	case model.RawParagraph:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, node.Kind)
	}

	switch level := node.Style.HeadingLevel; {
	case level == 1:
		return &model.Heading{Text: strings.TrimSpace(node.Text())}, nil
	case level >= 2:
		return &model.Subheading{Text: strings.TrimSpace(node.Text())}, nil
	}

	if len(node.Runs) > 0 && c.Emphasis.Matches(node.Runs[0].Style) {
		return &model.Subheading{Text: strings.TrimSpace(node.Text())}, nil
	}

	return &model.Paragraph{Runs: node.Runs}, nil
}
