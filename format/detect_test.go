package format

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{Markdown, "Markdown"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.String())
	}
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".docx", DOCX.Extension())
	assert.Equal(t, ".md", Markdown.Extension())
	assert.Equal(t, ".html", HTML.Extension())
	assert.Equal(t, "", Unknown.Extension())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.docx", DOCX},
		{"document.DOCX", DOCX},
		{"/path/to/file.Docx", DOCX},
		{"document.odt", ODT},
		{"document.xlsx", XLSX},
		{"document.pptx", PPTX},
		{"notes.md", Markdown},
		{"notes.markdown", Markdown},
		{"page.htm", HTML},
		{"document.doc", Unknown},
		{"document", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.filename))
		})
	}
}

func TestParse(t *testing.T) {
	for name, want := range map[string]Format{
		"docx": DOCX, "": DOCX, "MD": Markdown, "markdown": Markdown, "html": HTML,
	} {
		got, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := Parse("pdf")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCheckInput(t *testing.T) {
	assert.NoError(t, CheckInput("report.docx"))
	assert.NoError(t, CheckInput("REPORT.DOCX"))

	err := CheckInput("/tmp/report.pdf")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorContains(t, err, "report.pdf")

	assert.ErrorIs(t, CheckInput("noextension"), ErrUnsupported)
}

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"docx", zipWith(t, "[Content_Types].xml", "word/document.xml"), DOCX},
		{"xlsx", zipWith(t, "[Content_Types].xml", "xl/workbook.xml"), XLSX},
		{"pptx", zipWith(t, "ppt/presentation.xml"), PPTX},
		{"plain zip", zipWith(t, "readme.txt"), Unknown},
		{"pdf", []byte("%PDF-1.7"), Unknown},
		{"short", []byte("PK"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFromReader(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFromReader_ODT(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/vnd.oasis.opendocument.text"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := DetectFromReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, ODT, got)
}
