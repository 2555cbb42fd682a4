package model

import "strings"

// NodeKind represents the variant of a classified body node
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindHeading
	NodeKindSubheading
	NodeKindParagraph
	NodeKindTable
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindHeading:
		return "Heading"
	case NodeKindSubheading:
		return "Subheading"
	case NodeKindParagraph:
		return "Paragraph"
	case NodeKindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Node is the interface for all classified body nodes
type Node interface {
	Kind() NodeKind
}

// TextElement is an interface for nodes containing text
type TextElement interface {
	Node
	GetText() string
}

// Heading represents a top-level section label
type Heading struct {
	Text string
}

func (h *Heading) Kind() NodeKind  { return NodeKindHeading }
func (h *Heading) GetText() string { return h.Text }

// Subheading represents a second-level section label
type Subheading struct {
	Text string
}

func (s *Subheading) Kind() NodeKind  { return NodeKindSubheading }
func (s *Subheading) GetText() string { return s.Text }

// Paragraph represents a paragraph made of formatted runs
type Paragraph struct {
	Runs []Run
}

func (p *Paragraph) Kind() NodeKind { return NodeKindParagraph }

// GetText returns the concatenated text of all runs.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// ImageCount returns the number of inline images across all runs.
func (p *Paragraph) ImageCount() int {
	n := 0
	for _, r := range p.Runs {
		n += len(r.Images)
	}
	return n
}

// Run is a contiguous span of text sharing one formatting state
type Run struct {
	Text   string
	Style  TextStyle
	Images []ImageRef
}

// TextStyle represents direct run formatting
type TextStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Any reports whether at least one flag is set.
func (s TextStyle) Any() bool {
	return s.Bold || s.Italic || s.Underline
}

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

// EMUPerPixel is the number of EMUs in one pixel at 96 DPI.
const EMUPerPixel = 9525

// ImageRef represents an inline image inside a run.
//
// Within a Source only RelID, the size hints and the descriptive fields are
// set; Data is filled when the merge engine copies the image into a merged
// Document.
type ImageRef struct {
	RelID   string // relationship id in the source package
	Name    string
	AltText string
	Width   int64 // EMUs
	Height  int64 // EMUs, 0 when unknown
	Data    []byte
	Format  ImageFormat
}

// ImageFormat represents image format
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJPEG
	ImageFormatPNG
	ImageFormatGIF
	ImageFormatBMP
	ImageFormatTIFF
	ImageFormatWEBP
)

// DetectImageFormat sniffs the format from the leading magic bytes.
func DetectImageFormat(data []byte) ImageFormat {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return ImageFormatPNG
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return ImageFormatJPEG
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return ImageFormatGIF
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return ImageFormatBMP
	case len(data) >= 4 && (string(data[:4]) == "II*\x00" || string(data[:4]) == "MM\x00*"):
		return ImageFormatTIFF
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ImageFormatWEBP
	default:
		return ImageFormatUnknown
	}
}

// Extension returns the file extension used when storing the image.
func (f ImageFormat) Extension() string {
	switch f {
	case ImageFormatJPEG:
		return ".jpeg"
	case ImageFormatGIF:
		return ".gif"
	case ImageFormatBMP:
		return ".bmp"
	case ImageFormatTIFF:
		return ".tiff"
	case ImageFormatWEBP:
		return ".webp"
	default:
		return ".png"
	}
}

// ContentType returns the MIME type of the format.
func (f ImageFormat) ContentType() string {
	switch f {
	case ImageFormatJPEG:
		return "image/jpeg"
	case ImageFormatGIF:
		return "image/gif"
	case ImageFormatBMP:
		return "image/bmp"
	case ImageFormatTIFF:
		return "image/tiff"
	case ImageFormatWEBP:
		return "image/webp"
	default:
		return "image/png"
	}
}
