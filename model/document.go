package model

import (
	"strings"
	"time"
)

// Document represents a merged document body
type Document struct {
	Metadata Metadata
	Body     []Node
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Body: make([]Node, 0),
	}
}

// Append adds nodes to the end of the body
func (d *Document) Append(nodes ...Node) {
	d.Body = append(d.Body, nodes...)
}

// Len returns the number of body nodes
func (d *Document) Len() int {
	return len(d.Body)
}

// ExtractText returns all text content, one node per line
func (d *Document) ExtractText() string {
	var sb strings.Builder
	for _, n := range d.Body {
		if te, ok := n.(TextElement); ok {
			sb.WriteString(te.GetText())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Headings returns the text of every heading in body order
func (d *Document) Headings() []string {
	var out []string
	for _, n := range d.Body {
		if h, ok := n.(*Heading); ok {
			out = append(out, h.Text)
		}
	}
	return out
}

// Subheadings returns the text of every sub-heading in body order
func (d *Document) Subheadings() []string {
	var out []string
	for _, n := range d.Body {
		if s, ok := n.(*Subheading); ok {
			out = append(out, s.Text)
		}
	}
	return out
}

// Paragraphs returns all paragraphs in body order
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range d.Body {
		if p, ok := n.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns all tables in body order
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, n := range d.Body {
		if t, ok := n.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns every inline image in body order
func (d *Document) Images() []ImageRef {
	var out []ImageRef
	for _, p := range d.Paragraphs() {
		for _, r := range p.Runs {
			out = append(out, r.Images...)
		}
	}
	return out
}
