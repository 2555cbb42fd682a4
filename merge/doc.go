// Package merge combines several parsed documents into one.
//
// Every body node of every source is classified as a heading, sub-heading,
// paragraph or table. Paragraphs and tables are bucketed under the current
// (heading, sub-heading) pair, with both key levels ordered by first
// appearance across all sources. Inside each bucket, tables with the same
// normalized header row and column count are concatenated into one table.
// The result is emitted as a fresh model.Document whose images are copied out
// of the source packages.
//
// Basic usage:
//
//	doc, warnings, err := merge.NewEngine().Merge(sources)
package merge
