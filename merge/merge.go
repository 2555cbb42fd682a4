package merge

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/docmerge/model"
)

// DefaultImageWidth is the width of every emitted image: two inches.
const DefaultImageWidth = 2 * model.EMUPerInch

// Engine merges sources into one document. Its fields are read-only during
// Merge, so one Engine may serve concurrent merges as long as Classifier and
// Describer are safe for concurrent use.
type Engine struct {
	Classifier Classifier
	Logger     *slog.Logger

	// IncludeFirstCell adds the trimmed text of cell (0,0) to table keys.
	IncludeFirstCell bool

	// ImageWidth is the emitted image width in EMUs; 0 means DefaultImageWidth.
	ImageWidth int64

	// TableSpacing appends a blank paragraph after every emitted table.
	TableSpacing bool

	// Describer, when set, fills in missing image alt text.
	Describer ImageDescriber
}

// NewEngine returns an Engine with the default classifier, two inch images
// and table spacing on.
func NewEngine() *Engine {
	return &Engine{
		Classifier:   NewClassifier(),
		ImageWidth:   DefaultImageWidth,
		TableSpacing: true,
	}
}

// Merge groups, resolves and emits the sources in order. It returns a
// ParseError when a node cannot be classified and a MergeError when a table
// cannot be merged; in both cases no document is returned. Recovered
// problems are returned as warnings.
func (e *Engine) Merge(sources []*model.Source) (*model.Document, []Warning, error) {
	classifier, logger := e.collaborators()

	md, err := e.group(classifier, logger, sources)
	if err != nil {
		return nil, nil, err
	}

	resolver := &TableResolver{IncludeFirstCell: e.IncludeFirstCell, Logger: logger}
	for _, bucket := range md.Buckets() {
		for _, section := range bucket.Sections() {
			items, err := resolver.Resolve(bucket.Key, section)
			if err != nil {
				return nil, nil, err
			}
			section.Items = items
		}
	}

	width := e.ImageWidth
	if width <= 0 {
		width = DefaultImageWidth
	}
	em := &emitter{
		imageWidth:   width,
		tableSpacing: e.TableSpacing,
		describer:    e.Describer,
		logger:       logger,
		doc:          model.NewDocument(),
	}
	if len(sources) > 0 {
		em.doc.Metadata = sources[0].Metadata
	}
	em.emit(md)

	logger.Debug("merge complete",
		"sources", len(sources),
		"headings", len(md.Buckets()),
		"nodes", em.doc.Len(),
		"warnings", len(em.warnings))

	return em.doc, em.warnings, nil
}

// Group classifies and groups the sources without resolving tables.
func (e *Engine) Group(sources []*model.Source) (*MergedDocument, error) {
	classifier, logger := e.collaborators()
	return e.group(classifier, logger, sources)
}

// collaborators returns the configured classifier and logger, or defaults.
func (e *Engine) collaborators() (Classifier, *slog.Logger) {
	classifier := e.Classifier
	if classifier == nil {
		classifier = NewClassifier()
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return classifier, logger
}

func (e *Engine) group(classifier Classifier, logger *slog.Logger, sources []*model.Source) (*MergedDocument, error) {
	g := NewGrouper()
	for i, src := range sources {
		if src == nil {
			return nil, &ParseError{Source: i, Node: -1, Err: fmt.Errorf("nil source")}
		}
		g.StartSource(src)

		for n, raw := range src.Nodes {
			node, err := classifier.Classify(raw)
			if err != nil {
				return nil, &ParseError{Doc: src.Name, Source: i, Node: n, Err: err}
			}
			g.Add(node)
		}

		logger.Debug("document grouped", "doc", sourceName(src), "nodes", len(src.Nodes))
	}
	return g.Result(), nil
}
