package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const testPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// testDocument wraps body content in a w:document element.
func testDocument(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
  xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
  xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">
  <w:body>` + body + `</w:body>
</w:document>`
}

// buildTestPackage zips the given parts in memory.
func buildTestPackage(t *testing.T, parts map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// writeTestPackage writes the given parts as a DOCX file and returns its path.
func writeTestPackage(t *testing.T, parts map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	require.NoError(t, os.WriteFile(path, buildTestPackage(t, parts), 0o644))
	return path
}

// createTestDOCX creates a minimal DOCX file for testing.
func createTestDOCX(t *testing.T, body string) string {
	t.Helper()
	return writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"_rels/.rels":         []byte(testPackageRels),
		"word/document.xml":   []byte(testDocument(body)),
	})
}

// createTestDOCXWithStyles creates a DOCX with styles.xml for heading detection.
func createTestDOCXWithStyles(t *testing.T, body, styles string) string {
	t.Helper()
	return writeTestPackage(t, map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"_rels/.rels":         []byte(testPackageRels),
		"word/document.xml":   []byte(testDocument(body)),
		"word/styles.xml": []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + styles + `</w:styles>`),
	})
}

// testPNG encodes a blank PNG of the given pixel size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// inlineImage returns a run holding one inline picture.
func inlineImage(relID, name, descr string) string {
	return `<w:r><w:drawing><wp:inline>
  <wp:extent cx="1828800" cy="914400"/>
  <wp:docPr id="1" name="` + name + `" descr="` + descr + `"/>
  <a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">
    <pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic>
  </a:graphicData></a:graphic>
</wp:inline></w:drawing></w:r>`
}
