// Package docx reads and writes DOCX (Office Open XML) documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/docmerge/model"
)

// Reader provides access to DOCX document content.
//
// A Reader is also the model.MediaSource of the Source it produces, so it
// must stay open until everything built from that Source has been emitted.
type Reader struct {
	name      string
	closer    io.Closer
	zipReader *zip.Reader
	files     map[string]*zip.File
	resolver  *StyleResolver
	tables    *TableParser
	rels      map[string]relationshipXML
	coreProps *corePropertiesXML
	nodes     []model.RawNode
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader, filepath.Base(filename))
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads a DOCX package from an io.ReaderAt of the given size.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, "")
}

func newReader(zr *zip.Reader, name string) (*Reader, error) {
	r := &Reader{
		name:      name,
		zipReader: zr,
		files:     make(map[string]*zip.File, len(zr.File)),
		rels:      make(map[string]relationshipXML),
		tables:    NewTableParser(),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Styles must be known before the body is classified by style
	if err := r.parseStyles(); err != nil {
		return nil, fmt.Errorf("parsing styles: %w", err)
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Metadata is optional
	r.parseCoreProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	for _, name := range required {
		if r.files[name] == nil {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.files[name]
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Name returns the base name of the opened file, or "" for in-memory packages.
func (r *Reader) Name() string {
	return r.name
}

// Nodes returns the body nodes in document order.
func (r *Reader) Nodes() []model.RawNode {
	return r.nodes
}

// Source returns the parsed document as a merge input. The Reader serves
// as the Source's media.
func (r *Reader) Source() *model.Source {
	return &model.Source{
		Name:     r.name,
		Metadata: r.Metadata(),
		Nodes:    r.nodes,
		Media:    r,
	}
}

// Text extracts and returns all text content from the document.
func (r *Reader) Text() string {
	var result strings.Builder
	for i, node := range r.nodes {
		if i > 0 {
			result.WriteString("\n")
		}
		switch node.Kind {
		case model.RawParagraph:
			result.WriteString(node.Text())
		case model.RawTable:
			result.WriteString(strings.TrimRight(node.Table.GetText(), "\n"))
		}
	}
	return result.String()
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Custom: make(map[string]string)}
	if r.coreProps == nil {
		return meta
	}

	meta.Title = r.coreProps.Title
	meta.Author = r.coreProps.Creator
	meta.Subject = r.coreProps.Subject
	meta.Creator = r.coreProps.LastModifiedBy
	if r.coreProps.Keywords != "" {
		meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
		for i, kw := range meta.Keywords {
			meta.Keywords[i] = strings.TrimSpace(kw)
		}
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Created)); err == nil {
		meta.CreationDate = t
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(r.coreProps.Modified)); err == nil {
		meta.ModDate = t
	}
	if r.coreProps.Description != "" {
		meta.Custom["description"] = r.coreProps.Description
	}
	return meta
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationships {
		r.rels[rel.ID] = rel
	}
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		// Styles are optional - built-in style IDs still resolve
		r.resolver = NewStyleResolver(nil)
		return nil
	}

	var styles stylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return err
	}
	r.resolver = NewStyleResolver(&styles)
	return nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseDocument streams word/document.xml and collects the direct children
// of <w:body> in document order. Only paragraphs and tables become nodes;
// section properties, bookmarks and content controls are skipped.
func (r *Reader) parseDocument() error {
	f := r.files["word/document.xml"]
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	inBody := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decoding document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if !inBody {
				if t.Name.Local == "body" {
					inBody = true
				}
				continue
			}

			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := decoder.DecodeElement(&p, &t); err != nil {
					return fmt.Errorf("decoding paragraph %d: %w", len(r.nodes), err)
				}
				r.nodes = append(r.nodes, r.processParagraph(p))
			case "tbl":
				var tbl tableXML
				if err := decoder.DecodeElement(&tbl, &t); err != nil {
					return fmt.Errorf("decoding table %d: %w", len(r.nodes), err)
				}
				r.nodes = append(r.nodes, model.RawNode{
					Kind:  model.RawTable,
					Table: r.tables.ParseTable(tbl),
				})
			default:
				if err := decoder.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if inBody && t.Name.Local == "body" {
				return nil
			}
		}
	}

	return nil
}

// processParagraph converts a paragraph into a raw node with its resolved
// style and direct run formatting.
func (r *Reader) processParagraph(p paragraphXML) model.RawNode {
	style := r.resolver.Resolve(p.Properties.Style.Val)
	node := model.RawNode{
		Kind: model.RawParagraph,
		Style: model.StyleMetadata{
			StyleID:      style.ID,
			StyleName:    style.Name,
			HeadingLevel: style.HeadingLevel,
		},
	}

	// Direct outline level on the paragraph promotes it to a heading
	if node.Style.HeadingLevel == 0 && p.Properties.OutlineLvl.Val != "" {
		if level := parseOutlineLevel(p.Properties.OutlineLvl.Val); level >= 0 && level <= 8 {
			node.Style.HeadingLevel = level + 1
		}
	}

	for _, run := range p.Runs {
		node.Runs = append(node.Runs, model.Run{
			Text: run.Text,
			Style: model.TextStyle{
				Bold:      run.Properties.Bold.On(),
				Italic:    run.Properties.Italic.On(),
				Underline: run.Properties.Underline.On(),
			},
			Images: r.extractImages(run.Drawings),
		})
	}

	return node
}

// extractImages collects embedded picture references from a run's drawings.
func (r *Reader) extractImages(drawings []drawingXML) []model.ImageRef {
	var images []model.ImageRef
	for _, d := range drawings {
		inline := d.Inline
		if inline == nil {
			inline = d.Anchor
		}
		if inline == nil || inline.Blip == nil || inline.Blip.Embed == "" {
			continue
		}

		width, _ := strconv.ParseInt(inline.Extent.CX, 10, 64)
		height, _ := strconv.ParseInt(inline.Extent.CY, 10, 64)
		images = append(images, model.ImageRef{
			RelID:   inline.Blip.Embed,
			Name:    inline.DocPr.Name,
			AltText: inline.DocPr.Descr,
			Width:   width,
			Height:  height,
		})
	}
	return images
}
