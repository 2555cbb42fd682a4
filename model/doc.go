// Package model provides the intermediate representation (IR) shared by the
// container readers, the merge engine, and the output writers.
//
// # Input
//
// A [Source] is one parsed input document: an ordered list of [RawNode]
// values (paragraphs and tables with their [StyleMetadata]) plus a
// [MediaSource] from which embedded images can be extracted on demand.
//
// # Output
//
// A [Document] is an ordered body of classified [Node] values:
//
//   - [Heading] - top-level section label
//   - [Subheading] - second-level section label
//   - [Paragraph] - an ordered list of formatted [Run] values
//   - [Table] - rows of plain-text [Cell] values
//
// Runs carry bold, italic, and underline flags and may own inline
// [ImageRef] values. In a [Source] an image ref only names the media
// relationship; in a merged [Document] it owns an independent copy of the
// image bytes.
//
// # Export
//
// Documents can be rendered to Markdown with [Document.ToMarkdown]; tables
// also export with [Table.ToMarkdown] and [Table.ToCSV].
package model
