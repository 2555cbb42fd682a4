package merge

import (
	"strings"

	"github.com/tsawler/docmerge/model"
)

// HeadingKey identifies a heading bucket. The zero value is LeadingHeading,
// which collects content that precedes the first heading of a source.
type HeadingKey struct {
	text  string
	named bool
}

// LeadingHeading is the bucket for content before any heading.
var LeadingHeading = HeadingKey{}

// NewHeadingKey returns the key for a heading with the given text.
func NewHeadingKey(text string) HeadingKey {
	return HeadingKey{text: strings.TrimSpace(text), named: true}
}

// Text returns the heading text; it is empty for LeadingHeading.
func (k HeadingKey) Text() string { return k.text }

// IsLeading reports whether k is LeadingHeading.
func (k HeadingKey) IsLeading() bool { return !k.named }

// SubheadingKey identifies a sub-heading section inside a heading bucket.
// The zero value is NoSubheading.
type SubheadingKey struct {
	text  string
	named bool
}

// NoSubheading is the section for content not under any sub-heading.
var NoSubheading = SubheadingKey{}

// NewSubheadingKey returns the key for a sub-heading with the given text.
func NewSubheadingKey(text string) SubheadingKey {
	return SubheadingKey{text: strings.TrimSpace(text), named: true}
}

// Text returns the sub-heading text; it is empty for NoSubheading.
func (k SubheadingKey) Text() string { return k.text }

// IsNone reports whether k is NoSubheading.
func (k SubheadingKey) IsNone() bool { return !k.named }

// Item is one paragraph or table together with the source it came from.
type Item struct {
	Node   model.Node
	Source *model.Source
}

// Section is the ordered content under one sub-heading.
type Section struct {
	Key   SubheadingKey
	Items []Item
}

// Bucket is the ordered set of sections under one heading.
type Bucket struct {
	Key      HeadingKey
	sections *orderedMap[SubheadingKey, *Section]
}

func newBucket(key HeadingKey) *Bucket {
	return &Bucket{Key: key, sections: newOrderedMap[SubheadingKey, *Section]()}
}

// Sections returns the sections in first-appearance order.
func (b *Bucket) Sections() []*Section {
	return b.sections.values()
}

// Section returns the section for key, if present.
func (b *Bucket) Section(key SubheadingKey) (*Section, bool) {
	return b.sections.get(key)
}

func (b *Bucket) section(key SubheadingKey) *Section {
	return b.sections.getOrCreate(key, func() *Section { return &Section{Key: key} })
}

// MergedDocument is the grouped content of all sources.
type MergedDocument struct {
	buckets *orderedMap[HeadingKey, *Bucket]
}

// Buckets returns the heading buckets in first-appearance order. The
// LeadingHeading bucket is always first.
func (d *MergedDocument) Buckets() []*Bucket {
	return d.buckets.values()
}

// Bucket returns the bucket for key, if present.
func (d *MergedDocument) Bucket(key HeadingKey) (*Bucket, bool) {
	return d.buckets.get(key)
}

func (d *MergedDocument) bucket(key HeadingKey) *Bucket {
	return d.buckets.getOrCreate(key, func() *Bucket { return newBucket(key) })
}

// Grouper builds a MergedDocument from classified nodes, one source at a
// time. A Grouper belongs to a single merge.
type Grouper struct {
	doc        *MergedDocument
	source     *model.Source
	heading    *Bucket
	subheading SubheadingKey
}

// NewGrouper returns a Grouper whose result already holds the
// LeadingHeading bucket.
func NewGrouper() *Grouper {
	g := &Grouper{doc: &MergedDocument{buckets: newOrderedMap[HeadingKey, *Bucket]()}}
	g.heading = g.doc.bucket(LeadingHeading)
	return g
}

// StartSource resets the heading context for the next source document.
// Content that precedes the first heading of a later source goes to the
// leading bucket, not under the last heading of the previous source. A
// source's first heading likewise starts with no subheading.
func (g *Grouper) StartSource(src *model.Source) {
	g.source = src
	g.heading = g.doc.bucket(LeadingHeading)
	g.subheading = NoSubheading
}

// Add places one classified node.
func (g *Grouper) Add(node model.Node) {
	switch n := node.(type) {
	case *model.Heading:
		g.heading = g.doc.bucket(NewHeadingKey(n.Text))
		g.subheading = NoSubheading
	case *model.Subheading:
		g.subheading = NewSubheadingKey(n.Text)
		g.heading.section(g.subheading)
	default:
		s := g.heading.section(g.subheading)
		s.Items = append(s.Items, Item{Node: node, Source: g.source})
	}
}

// Result returns the grouped document.
func (g *Grouper) Result() *MergedDocument {
	return g.doc
}
