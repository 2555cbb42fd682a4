package docx

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docmerge/model"
)

func TestOpen(t *testing.T) {
	docxPath := createTestDOCX(t, `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`)

	r, err := Open(docxPath)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "test.docx", r.Name())
	assert.Equal(t, "Hello World", r.Text())
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	assert.Error(t, err)
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip file"), 0o644))

	_, err := Open(path)
	assert.ErrorContains(t, err, "opening ZIP archive")
}

func TestOpen_MissingDocumentXML(t *testing.T) {
	path := writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
	})

	_, err := Open(path)
	assert.ErrorContains(t, err, "missing required file: word/document.xml")
}

func TestOpen_MalformedDocumentXML(t *testing.T) {
	path := writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"word/document.xml":   []byte(`<w:document><w:body><w:p>`),
	})

	_, err := Open(path)
	assert.ErrorContains(t, err, "parsing document")
}

func TestOpenReader(t *testing.T) {
	data := buildTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"word/document.xml":   []byte(testDocument(`<w:p><w:r><w:t>in memory</w:t></w:r></w:p>`)),
	})

	r, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "", r.Name())
	assert.Equal(t, "in memory", r.Text())
}

func TestReader_BodyOrder(t *testing.T) {
	body := `
<w:p><w:r><w:t>first</w:t></w:r></w:p>
<w:bookmarkStart w:id="0" w:name="x"/>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>second</w:t></w:r></w:p>
<w:sectPr><w:pgSz w:w="12240" w:h="15840"/></w:sectPr>`

	r, err := Open(createTestDOCX(t, body))
	require.NoError(t, err)
	defer r.Close()

	nodes := r.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, model.RawParagraph, nodes[0].Kind)
	assert.Equal(t, "first", nodes[0].Text())
	assert.Equal(t, model.RawTable, nodes[1].Kind)
	assert.Equal(t, "cell", nodes[1].Table.GetCell(0, 0).Text)
	assert.Equal(t, model.RawParagraph, nodes[2].Kind)
	assert.Equal(t, "second", nodes[2].Text())

	assert.Equal(t, "first\ncell\nsecond", r.Text())
}

func TestReader_RunFormatting(t *testing.T) {
	body := `<w:p>
<w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>
<w:r><w:rPr><w:b w:val="0"/><w:i/></w:rPr><w:t>italic</w:t></w:r>
<w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>under</w:t></w:r>
<w:r><w:rPr><w:u w:val="none"/><w:i w:val="false"/></w:rPr><w:t>plain</w:t></w:r>
<w:r><w:t xml:space="preserve">a </w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r>
</w:p>`

	r, err := Open(createTestDOCX(t, body))
	require.NoError(t, err)
	defer r.Close()

	runs := r.Nodes()[0].Runs
	require.Len(t, runs, 5)

	assert.Equal(t, model.TextStyle{Bold: true}, runs[0].Style)
	assert.Equal(t, model.TextStyle{Italic: true}, runs[1].Style)
	assert.Equal(t, model.TextStyle{Underline: true}, runs[2].Style)
	assert.Equal(t, model.TextStyle{}, runs[3].Style)
	assert.Equal(t, "a \tb\nc", runs[4].Text)
}

func TestReader_HyperlinkRunsExcluded(t *testing.T) {
	body := `<w:p><w:r><w:t>see </w:t></w:r><w:hyperlink r:id="rId9"><w:r><w:t>link</w:t></w:r></w:hyperlink></w:p>`

	r, err := Open(createTestDOCX(t, body))
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.Nodes()[0].Runs, 1)
	assert.Equal(t, "see ", r.Nodes()[0].Text())
}

func TestReader_HeadingLevels(t *testing.T) {
	styles := `
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Kop2"><w:name w:val="Heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="Chapter"><w:name w:val="Chapter"/><w:pPr><w:outlineLvl w:val="0"/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="ChapterAlt"><w:name w:val="Chapter Alt"/><w:basedOn w:val="Chapter"/></w:style>`

	body := `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>One</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Kop2"/></w:pPr><w:r><w:t>Two</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="ChapterAlt"/></w:pPr><w:r><w:t>Chapter</w:t></w:r></w:p>
<w:p><w:r><w:t>Body</w:t></w:r></w:p>
<w:p><w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:r><w:t>Direct</w:t></w:r></w:p>`

	r, err := Open(createTestDOCXWithStyles(t, body, styles))
	require.NoError(t, err)
	defer r.Close()

	nodes := r.Nodes()
	require.Len(t, nodes, 6)

	tests := []struct {
		name      string
		styleName string
		level     int
	}{
		{"builtin id", "heading 1", 1},
		{"name", "Heading 2", 2},
		{"title is not a heading", "Title", 0},
		{"inherited outline level", "Chapter Alt", 1},
		{"default style", "Normal", 0},
		{"direct outline level", "Normal", 2},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.styleName, nodes[i].Style.StyleName)
			assert.Equal(t, tt.level, nodes[i].Style.HeadingLevel)
		})
	}
}

func TestReader_BuiltinHeadingWithoutStyles(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading3"/></w:pPr><w:r><w:t>H3</w:t></w:r></w:p>`

	r, err := Open(createTestDOCX(t, body))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 3, r.Nodes()[0].Style.HeadingLevel)
}

func TestReader_Images(t *testing.T) {
	pngData := testPNG(t, 4, 2)
	docRels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
  <Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/missing.png"/>
  <Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="http://example.com/a.png" TargetMode="External"/>
</Relationships>`
	body := `<w:p><w:r><w:t>Caption</w:t></w:r>` + inlineImage("rId5", "Picture 1", "a chart") + `</w:p>`

	path := writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml":          []byte(testContentTypes),
		"word/document.xml":            []byte(testDocument(body)),
		"word/_rels/document.xml.rels": []byte(docRels),
		"word/media/image1.png":        pngData,
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	runs := r.Nodes()[0].Runs
	require.Len(t, runs, 2)
	require.Len(t, runs[1].Images, 1)

	img := runs[1].Images[0]
	assert.Equal(t, "rId5", img.RelID)
	assert.Equal(t, "Picture 1", img.Name)
	assert.Equal(t, "a chart", img.AltText)
	assert.Equal(t, int64(2*model.EMUPerInch), img.Width)
	assert.Equal(t, int64(model.EMUPerInch), img.Height)

	rc, err := r.OpenImage("rId5")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pngData, got)

	for _, id := range []string{"rId404", "rId6", "rId7"} {
		_, err := r.OpenImage(id)
		assert.ErrorIs(t, err, ErrMediaNotFound, id)
	}
}

func TestReader_Source(t *testing.T) {
	core := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:title>Quarterly</dc:title>
  <dc:creator>Finance</dc:creator>
  <cp:keywords>q1, revenue</cp:keywords>
  <dcterms:created>2024-01-02T03:04:05Z</dcterms:created>
</cp:coreProperties>`

	path := writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"word/document.xml":   []byte(testDocument(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`)),
		"docProps/core.xml":   []byte(core),
	})

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	src := r.Source()
	assert.Equal(t, "test.docx", src.Name)
	assert.Len(t, src.Nodes, 1)
	assert.Same(t, r, src.Media)
	assert.Equal(t, "Quarterly", src.Metadata.Title)
	assert.Equal(t, "Finance", src.Metadata.Author)
	assert.Equal(t, []string{"q1", "revenue"}, src.Metadata.Keywords)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), src.Metadata.CreationDate)
}

func TestReader_Close(t *testing.T) {
	r, err := Open(createTestDOCX(t, `<w:p/>`))
	require.NoError(t, err)

	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestParseOutlineLevel(t *testing.T) {
	assert.Equal(t, 0, parseOutlineLevel("0"))
	assert.Equal(t, 8, parseOutlineLevel("8"))
	assert.Equal(t, -1, parseOutlineLevel("x"))
}

func TestPartName(t *testing.T) {
	assert.Equal(t, "word/media/image1.png", partName("media/image1.png"))
	assert.Equal(t, "media/image1.png", partName("/media/image1.png"))
	assert.Equal(t, "word/image.png", partName("media/../image.png"))
}
