package merge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/docmerge/model"
)

// ErrNoMedia is reported when a source has images but no media to read them from.
var ErrNoMedia = errors.New("source has no media")

// ImageDescriber produces alt text for an image payload.
type ImageDescriber interface {
	Describe(data []byte) (string, error)
}

// emitter renders a MergedDocument into a model.Document.
type emitter struct {
	imageWidth   int64
	tableSpacing bool
	describer    ImageDescriber
	logger       *slog.Logger

	doc      *model.Document
	warnings []Warning
}

func (e *emitter) emit(md *MergedDocument) {
	for _, bucket := range md.Buckets() {
		if !bucket.Key.IsLeading() {
			e.doc.Append(&model.Heading{Text: bucket.Key.Text()})
		}
		for _, section := range bucket.Sections() {
			if !section.Key.IsNone() {
				e.doc.Append(&model.Subheading{Text: section.Key.Text()})
			}
			for _, item := range section.Items {
				e.emitItem(item)
			}
		}
	}
}

func (e *emitter) emitItem(item Item) {
	switch n := item.Node.(type) {
	case *model.Paragraph:
		e.doc.Append(e.paragraph(n, item.Source))
	case *model.Table:
		t := n.Clone()
		t.Bordered = true
		e.doc.Append(t)
		if e.tableSpacing {
			e.doc.Append(&model.Paragraph{})
		}
	}
}

// paragraph copies the runs of p. Images that cannot be extracted are left
// out and reported as warnings.
func (e *emitter) paragraph(p *model.Paragraph, src *model.Source) *model.Paragraph {
	out := &model.Paragraph{Runs: make([]model.Run, 0, len(p.Runs))}
	for _, run := range p.Runs {
		r := model.Run{Text: run.Text, Style: run.Style}
		for _, img := range run.Images {
			if copied, ok := e.image(img, src); ok {
				r.Images = append(r.Images, copied)
			}
		}
		out.Runs = append(out.Runs, r)
	}
	return out
}

func (e *emitter) image(img model.ImageRef, src *model.Source) (model.ImageRef, bool) {
	name := sourceName(src)

	data, err := extractImage(src, img.RelID)
	if err != nil {
		ierr := &ImageExtractionError{Doc: name, RelID: img.RelID, Err: err}
		e.logger.Warn("image omitted", "doc", name, "rel", img.RelID, "error", err)
		e.warnings = append(e.warnings, Warning{Message: "image omitted", Err: ierr})
		return model.ImageRef{}, false
	}

	out := model.ImageRef{
		Name:    img.Name,
		AltText: img.AltText,
		Width:   e.imageWidth,
		Data:    data,
		Format:  model.DetectImageFormat(data),
	}

	if e.describer != nil && out.AltText == "" {
		alt, err := e.describer.Describe(data)
		if err != nil {
			e.warnings = append(e.warnings, Warning{
				Message: fmt.Sprintf("no alt text for image %s in %s", img.RelID, name),
				Err:     err,
			})
		} else {
			out.AltText = alt
		}
	}

	return out, true
}

// extractImage copies one image payload into a new buffer. The source
// stream is closed before returning, also on failure.
func extractImage(src *model.Source, relID string) ([]byte, error) {
	if src == nil || src.Media == nil {
		return nil, ErrNoMedia
	}

	rc, err := src.Media.OpenImage(relID)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty image payload")
	}
	return data, nil
}

func sourceName(src *model.Source) string {
	if src == nil || src.Name == "" {
		return "<unnamed>"
	}
	return src.Name
}
