package model

import "io"

// RawKind is the structural type of an unclassified body node
type RawKind int

const (
	RawUnknown RawKind = iota
	RawParagraph
	RawTable
)

func (k RawKind) String() string {
	switch k {
	case RawParagraph:
		return "paragraph"
	case RawTable:
		return "table"
	default:
		return "unknown"
	}
}

// StyleMetadata describes the resolved paragraph style of a raw node.
type StyleMetadata struct {
	StyleID      string
	StyleName    string
	HeadingLevel int // 1-9, 0 if the style is not a heading style
}

// RawNode is one body element as read from a container, before
// classification. Paragraphs carry Runs; tables carry Table.
type RawNode struct {
	Kind  RawKind
	Style StyleMetadata
	Runs  []Run
	Table *Table
}

// Text returns the concatenated run text of a paragraph node.
func (n RawNode) Text() string {
	p := Paragraph{Runs: n.Runs}
	return p.GetText()
}

// MediaSource gives scoped access to the embedded media of one source
// document. Callers must close the returned reader.
type MediaSource interface {
	OpenImage(relID string) (io.ReadCloser, error)
}

// Source is one parsed input document.
type Source struct {
	Name     string
	Metadata Metadata
	Nodes    []RawNode
	Media    MediaSource
}
