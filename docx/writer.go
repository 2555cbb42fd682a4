package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	_ "golang.org/x/image/bmp"  // register BMP for DecodeConfig
	_ "golang.org/x/image/tiff" // register TIFF for DecodeConfig
	_ "golang.org/x/image/webp" // register WebP for DecodeConfig

	"github.com/tsawler/docmerge/model"
)

const (
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctCore     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctRels     = "application/vnd.openxmlformats-package.relationships+xml"

	// Heading and sub-heading run sizes in half-points.
	headingSize    = 32
	subheadingSize = 28

	// One inch in twips, used for page margins and header/footer distance.
	twipsPerInch = 1440
)

// Writer serializes a model.Document into a DOCX package.
type Writer struct {
	// Now stamps docProps/core.xml; nil means time.Now.
	Now func() time.Time

	media    []mediaPart
	byHash   map[uint64]int
	imageIDs int
}

// mediaPart is one stored image payload.
type mediaPart struct {
	relID       string
	name        string // part name under word/media
	contentType string
	data        []byte
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write produces a complete DOCX package for doc on out.
func (w *Writer) Write(out io.Writer, doc *model.Document) error {
	w.media = nil
	w.byHash = make(map[uint64]int)
	w.imageIDs = 0

	body, err := w.documentXML(doc)
	if err != nil {
		return err
	}

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", w.contentTypesXML()},
		{"_rels/.rels", packageRelsXML()},
		{"word/document.xml", body},
		{"word/styles.xml", stylesPartXML()},
		{"word/_rels/document.xml.rels", w.documentRelsXML()},
		{"docProps/core.xml", w.corePropsXML(doc.Metadata)},
	}

	zw := zip.NewWriter(out)
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := p.doc.WriteTo(f); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	for _, m := range w.media {
		f, err := zw.Create("word/media/" + m.name)
		if err != nil {
			return fmt.Errorf("creating media %s: %w", m.name, err)
		}
		if _, err := f.Write(m.data); err != nil {
			return fmt.Errorf("writing media %s: %w", m.name, err)
		}
	}

	return zw.Close()
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// documentXML builds word/document.xml.
func (w *Writer) documentXML(doc *model.Document) (*etree.Document, error) {
	xdoc := newXMLDocument()
	root := xdoc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)
	body := root.CreateElement("w:body")

	for i, node := range doc.Body {
		switch n := node.(type) {
		case *model.Heading:
			writeLabel(body, "Heading1", n.Text, headingSize)
		case *model.Subheading:
			writeLabel(body, "Heading2", n.Text, subheadingSize)
		case *model.Paragraph:
			w.writeParagraph(body, n)
		case *model.Table:
			writeTable(body, n)
		default:
			return nil, fmt.Errorf("body node %d: unsupported node %T", i, node)
		}
	}

	writeSectPr(body)
	return xdoc, nil
}

// writeLabel writes a bold heading paragraph with an explicit run size.
func writeLabel(body *etree.Element, styleID, text string, size int) {
	p := body.CreateElement("w:p")
	p.CreateElement("w:pPr").CreateElement("w:pStyle").CreateAttr("w:val", styleID)
	r := p.CreateElement("w:r")
	rPr := r.CreateElement("w:rPr")
	rPr.CreateElement("w:b")
	rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(size))
	writeText(r, text)
}

func (w *Writer) writeParagraph(body *etree.Element, para *model.Paragraph) {
	p := body.CreateElement("w:p")
	for _, run := range para.Runs {
		r := p.CreateElement("w:r")
		if run.Style.Any() {
			rPr := r.CreateElement("w:rPr")
			if run.Style.Bold {
				rPr.CreateElement("w:b")
			}
			if run.Style.Italic {
				rPr.CreateElement("w:i")
			}
			if run.Style.Underline {
				rPr.CreateElement("w:u").CreateAttr("w:val", "single")
			}
		}
		writeText(r, run.Text)

		for _, img := range run.Images {
			if len(img.Data) == 0 {
				continue
			}
			w.writeDrawing(r, img)
		}
	}
}

// writeText writes text into a run, mapping tabs and newlines to their
// run-level elements.
func writeText(r *etree.Element, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.CreateElement("w:br")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				r.CreateElement("w:tab")
			}
			if seg == "" {
				continue
			}
			t := r.CreateElement("w:t")
			t.CreateAttr("xml:space", "preserve")
			t.SetText(seg)
		}
	}
}

// writeTable writes a table. Bordered tables get single black borders on
// every cell.
func writeTable(body *etree.Element, table *model.Table) {
	tbl := body.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", "0")
	tblW.CreateAttr("w:type", "auto")

	cols := table.ColCount()
	grid := tbl.CreateElement("w:tblGrid")
	for i := 0; i < cols; i++ {
		grid.CreateElement("w:gridCol")
	}

	for _, row := range table.Rows {
		tr := tbl.CreateElement("w:tr")
		for _, cell := range row.Cells {
			tc := tr.CreateElement("w:tc")
			if table.Bordered {
				writeCellBorders(tc.CreateElement("w:tcPr"))
			}
			for _, line := range strings.Split(cell.Text, "\n") {
				p := tc.CreateElement("w:p")
				if line == "" {
					continue
				}
				r := p.CreateElement("w:r")
				if cell.Bold {
					r.CreateElement("w:rPr").CreateElement("w:b")
				}
				writeText(r, line)
			}
		}
	}
}

func writeCellBorders(tcPr *etree.Element) {
	borders := tcPr.CreateElement("w:tcBorders")
	for _, side := range []string{"top", "left", "bottom", "right"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "000000")
	}
}

// writeSectPr writes US Letter section properties with one inch margins and
// header/footer distance, without a distinct first page.
func writeSectPr(body *etree.Element) {
	sect := body.CreateElement("w:sectPr")
	pgSz := sect.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")

	inch := strconv.Itoa(twipsPerInch)
	pgMar := sect.CreateElement("w:pgMar")
	for _, attr := range []string{"top", "right", "bottom", "left", "header", "footer"} {
		pgMar.CreateAttr("w:"+attr, inch)
	}
	pgMar.CreateAttr("w:gutter", "0")
}

// writeDrawing stores the image payload and writes an inline drawing that
// references it.
func (w *Writer) writeDrawing(r *etree.Element, img model.ImageRef) {
	m := w.addMedia(img)
	cx, cy := imageExtent(img)
	w.imageIDs++
	id := strconv.Itoa(w.imageIDs)

	inline := r.CreateElement("w:drawing").CreateElement("wp:inline")
	for _, d := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(d, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", strconv.FormatInt(cx, 10))
	extent.CreateAttr("cy", strconv.FormatInt(cy, 10))

	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", id)
	docPr.CreateAttr("name", "Picture "+id)
	if img.AltText != "" {
		docPr.CreateAttr("descr", img.AltText)
	}
	inline.CreateElement("wp:cNvGraphicFramePr").
		CreateElement("a:graphicFrameLocks").CreateAttr("noChangeAspect", "1")

	graphicData := inline.CreateElement("a:graphic").CreateElement("a:graphicData")
	graphicData.CreateAttr("uri", nsPic)
	pic := graphicData.CreateElement("pic:pic")

	nvPicPr := pic.CreateElement("pic:nvPicPr")
	cNvPr := nvPicPr.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", m.name)
	nvPicPr.CreateElement("pic:cNvPicPr")

	blipFill := pic.CreateElement("pic:blipFill")
	blipFill.CreateElement("a:blip").CreateAttr("r:embed", m.relID)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	xfrm := pic.CreateElement("pic:spPr").CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(cx, 10))
	ext.CreateAttr("cy", strconv.FormatInt(cy, 10))
	geom := xfrm.Parent().CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}

// addMedia stores an image payload once per distinct content.
func (w *Writer) addMedia(img model.ImageRef) mediaPart {
	sum := xxhash.Sum64(img.Data)
	if i, ok := w.byHash[sum]; ok && bytes.Equal(w.media[i].data, img.Data) {
		return w.media[i]
	}

	format := img.Format
	if format == model.ImageFormatUnknown {
		format = model.DetectImageFormat(img.Data)
	}
	n := len(w.media) + 1
	m := mediaPart{
		relID:       "rId" + strconv.Itoa(n+1), // rId1 is the styles part
		name:        "image" + strconv.Itoa(n) + format.Extension(),
		contentType: format.ContentType(),
		data:        img.Data,
	}
	w.byHash[sum] = len(w.media)
	w.media = append(w.media, m)
	return m
}

// imageExtent returns the drawing size in EMUs. A missing height is derived
// from the decoded pixel aspect ratio; undecodable images are drawn square.
func imageExtent(img model.ImageRef) (int64, int64) {
	cx := img.Width
	if cx <= 0 {
		cx = 2 * model.EMUPerInch
	}
	if img.Height > 0 {
		return cx, img.Height
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil || cfg.Width == 0 {
		return cx, cx
	}
	return cx, cx * int64(cfg.Height) / int64(cfg.Width)
}

func (w *Writer) contentTypesXML() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsCT)

	addDefault := func(ext, contentType string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", contentType)
	}
	addDefault("rels", ctRels)
	addDefault("xml", "application/xml")

	exts := make(map[string]string)
	for _, m := range w.media {
		ext := m.name[strings.LastIndex(m.name, ".")+1:]
		exts[ext] = m.contentType
	}
	keys := make([]string, 0, len(exts))
	for ext := range exts {
		keys = append(keys, ext)
	}
	sort.Strings(keys)
	for _, ext := range keys {
		addDefault(ext, exts[ext])
	}

	addOverride := func(part, contentType string) {
		o := types.CreateElement("Override")
		o.CreateAttr("PartName", part)
		o.CreateAttr("ContentType", contentType)
	}
	addOverride("/word/document.xml", ctDocument)
	addOverride("/word/styles.xml", ctStyles)
	addOverride("/docProps/core.xml", ctCore)

	return doc
}

func newRelationships() (*etree.Document, func(id, typ, target string)) {
	doc := newXMLDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPkg)
	add := func(id, typ, target string) {
		rel := rels.CreateElement("Relationship")
		rel.CreateAttr("Id", id)
		rel.CreateAttr("Type", typ)
		rel.CreateAttr("Target", target)
	}
	return doc, add
}

func packageRelsXML() *etree.Document {
	doc, add := newRelationships()
	add("rId1", relTypeOfficeDocument, "word/document.xml")
	add("rId2", relTypeCoreProps, "docProps/core.xml")
	return doc
}

func (w *Writer) documentRelsXML() *etree.Document {
	doc, add := newRelationships()
	add("rId1", relTypeStyles, "styles.xml")
	for _, m := range w.media {
		add(m.relID, relTypeImage, "media/"+m.name)
	}
	return doc
}

// stylesPartXML defines Normal and the two heading styles the merged body
// uses. Heading levels are carried as outline levels so the output can be
// merged again.
func stylesPartXML() *etree.Document {
	doc := newXMLDocument()
	styles := doc.CreateElement("w:styles")
	styles.CreateAttr("xmlns:w", nsW)

	normal := styles.CreateElement("w:style")
	normal.CreateAttr("w:type", "paragraph")
	normal.CreateAttr("w:default", "1")
	normal.CreateAttr("w:styleId", "Normal")
	normal.CreateElement("w:name").CreateAttr("w:val", "Normal")

	for level, size := range []int{headingSize, subheadingSize} {
		id := "Heading" + strconv.Itoa(level+1)
		s := styles.CreateElement("w:style")
		s.CreateAttr("w:type", "paragraph")
		s.CreateAttr("w:styleId", id)
		s.CreateElement("w:name").CreateAttr("w:val", "heading "+strconv.Itoa(level+1))
		s.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
		s.CreateElement("w:next").CreateAttr("w:val", "Normal")
		s.CreateElement("w:qFormat")
		pPr := s.CreateElement("w:pPr")
		pPr.CreateElement("w:keepNext")
		pPr.CreateElement("w:outlineLvl").CreateAttr("w:val", strconv.Itoa(level))
		rPr := s.CreateElement("w:rPr")
		rPr.CreateElement("w:b")
		rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(size))
	}

	return doc
}

func (w *Writer) corePropsXML(meta model.Metadata) *etree.Document {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	doc := newXMLDocument()
	core := doc.CreateElement("cp:coreProperties")
	core.CreateAttr("xmlns:cp", nsCP)
	core.CreateAttr("xmlns:dc", nsDC)
	core.CreateAttr("xmlns:dcterms", nsDCTerms)
	core.CreateAttr("xmlns:xsi", nsXSI)

	if meta.Title != "" {
		core.CreateElement("dc:title").SetText(meta.Title)
	}
	if meta.Subject != "" {
		core.CreateElement("dc:subject").SetText(meta.Subject)
	}
	if meta.Author != "" {
		core.CreateElement("dc:creator").SetText(meta.Author)
	}
	if len(meta.Keywords) > 0 {
		core.CreateElement("cp:keywords").SetText(strings.Join(meta.Keywords, ", "))
	}

	created := meta.CreationDate
	if created.IsZero() {
		created = now()
	}
	modified := meta.ModDate
	if modified.IsZero() {
		modified = now()
	}
	for _, d := range []struct {
		tag string
		t   time.Time
	}{{"dcterms:created", created}, {"dcterms:modified", modified}} {
		el := core.CreateElement(d.tag)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(d.t.UTC().Format(time.RFC3339))
	}

	return doc
}
