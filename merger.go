package docmerge

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/tsawler/docmerge/docx"
	"github.com/tsawler/docmerge/format"
	"github.com/tsawler/docmerge/htmldoc"
	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
)

// Merger provides a fluent interface for merging documents.
// Each configuration method returns a new Merger instance, making it
// safe for concurrent use and allowing method chaining.
type Merger struct {
	// Inputs; only one of the two is set.
	files   []string
	sources []*model.Source

	options MergeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Merger. Inputs are shared; they are never
// modified after construction.
func (m *Merger) clone() *Merger {
	return &Merger{
		files:   m.files,
		sources: m.sources,
		options: m.options,
		err:     m.err,
	}
}

// ============================================================================
// Configuration Methods (return new Merger instance)
// ============================================================================

// IncludeFirstCell adds the text of each table's first cell to the table
// compatibility key, so tables merge only when their first cells also match.
//
// Example:
//
//	doc, _, err := docmerge.Open("a.docx", "b.docx").IncludeFirstCell().Document()
func (m *Merger) IncludeFirstCell() *Merger {
	n := m.clone()
	n.options.includeFirstCell = true
	return n
}

// ImageWidth sets the width, in inches, of every emitted image. Heights keep
// each image's aspect ratio.
func (m *Merger) ImageWidth(inches float64) *Merger {
	n := m.clone()
	if inches <= 0 {
		n.err = fmt.Errorf("image width must be positive, got %v", inches)
		return n
	}
	n.options.imageWidth = inchesToEMU(inches)
	return n
}

// SubheadingEmphasis selects which run flags ("bold", "italic",
// "underline") make an unstyled paragraph a sub-heading. Calling it with no
// names disables the emphasis fallback entirely.
//
// Example:
//
//	doc, _, err := docmerge.Open("a.docx").SubheadingEmphasis("bold").Document()
func (m *Merger) SubheadingEmphasis(names ...string) *Merger {
	n := m.clone()
	e, err := merge.ParseEmphasis(names)
	if err != nil {
		n.err = err
		return n
	}
	n.options.emphasis = e
	return n
}

// NoTableSpacing stops the blank paragraph normally written after each table.
func (m *Merger) NoTableSpacing() *Merger {
	n := m.clone()
	n.options.tableSpacing = false
	return n
}

// WithLogger sets the logger for merge diagnostics.
func (m *Merger) WithLogger(logger *slog.Logger) *Merger {
	n := m.clone()
	n.options.logger = logger
	return n
}

// WithDescriber sets an ImageDescriber used to fill in missing alt text,
// such as an *ocr.Client.
func (m *Merger) WithDescriber(d merge.ImageDescriber) *Merger {
	n := m.clone()
	n.options.describer = d
	return n
}

// WithClassifier replaces the style classifier. SubheadingEmphasis has no
// effect when a classifier is set.
func (m *Merger) WithClassifier(c merge.Classifier) *Merger {
	n := m.clone()
	n.options.classifier = c
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document merges the inputs and returns the merged document. Images in the
// result hold their own copies of the bytes, so the document stays valid
// after the input files are closed.
//
// Example:
//
//	doc, warnings, err := docmerge.Open("a.docx", "b.docx").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Headings())
func (m *Merger) Document() (*model.Document, []Warning, error) {
	if m.err != nil {
		return nil, nil, m.err
	}

	sources, closeAll, err := m.openSources()
	if err != nil {
		return nil, nil, err
	}
	defer closeAll()

	return m.options.engine().Merge(sources)
}

// WriteDOCX merges the inputs and writes the result as a DOCX package.
func (m *Merger) WriteDOCX(w io.Writer) ([]Warning, error) {
	doc, warnings, err := m.Document()
	if err != nil {
		return nil, err
	}
	if err := docx.NewWriter().Write(w, doc); err != nil {
		return warnings, fmt.Errorf("writing DOCX: %w", err)
	}
	return warnings, nil
}

// ToMarkdown merges the inputs and renders the result as Markdown.
func (m *Merger) ToMarkdown() (string, []Warning, error) {
	doc, warnings, err := m.Document()
	if err != nil {
		return "", nil, err
	}
	return doc.ToMarkdown(), warnings, nil
}

// ToHTML merges the inputs and writes the result as an HTML page.
func (m *Merger) ToHTML(w io.Writer) ([]Warning, error) {
	doc, warnings, err := m.Document()
	if err != nil {
		return nil, err
	}
	if err := htmldoc.Render(w, doc); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// openSources returns the sources to merge and a function releasing any
// readers opened here.
func (m *Merger) openSources() ([]*model.Source, func(), error) {
	if m.files == nil {
		return m.sources, func() {}, nil
	}

	var readers []*docx.Reader
	closeAll := func() {
		for _, r := range readers {
			_ = r.Close()
		}
	}

	sources := make([]*model.Source, 0, len(m.files))
	for i, name := range m.files {
		if err := format.CheckInput(name); err != nil {
			closeAll()
			return nil, nil, err
		}
		r, err := docx.Open(name)
		if err != nil {
			closeAll()
			return nil, nil, &merge.ParseError{Doc: filepath.Base(name), Source: i, Node: -1, Err: err}
		}
		readers = append(readers, r)
		sources = append(sources, r.Source())
	}
	return sources, closeAll, nil
}
