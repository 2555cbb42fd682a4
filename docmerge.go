// Package docmerge provides a fluent API for merging DOCX documents into one
// consolidated document grouped by heading and sub-heading, with compatible
// tables combined.
//
// Basic usage:
//
//	f, _ := os.Create("merged_report.docx")
//	defer f.Close()
//	warnings, err := docmerge.Open("a.docx", "b.docx").WriteDOCX(f)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docmerge.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := docmerge.Open("a.docx", "b.docx").
//	    IncludeFirstCell().
//	    SubheadingEmphasis("bold").
//	    ToMarkdown()
//
// For advanced use cases, the lower-level merge and docx packages are also
// available.
package docmerge

import (
	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
)

// Warning is a non-fatal issue met during a merge, such as an image that
// could not be copied.
type Warning = merge.Warning

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	return merge.FormatWarnings(warnings)
}

// Open returns a Merger over the named DOCX files, merged in argument order.
// Files are opened by the terminal operation and closed before it returns.
//
// Example:
//
//	doc, warnings, err := docmerge.Open("a.docx", "b.docx").Document()
func Open(files ...string) *Merger {
	return &Merger{
		files:   append([]string(nil), files...),
		options: defaultOptions(),
	}
}

// FromSources returns a Merger over already-parsed sources. The caller owns
// the sources and any media readers behind them.
//
// Example:
//
//	r, err := docx.Open("a.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	doc, _, err := docmerge.FromSources(r.Source()).Document()
func FromSources(sources ...*model.Source) *Merger {
	return &Merger{
		sources: append([]*model.Source(nil), sources...),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a call to Document() or ToMarkdown()
// and panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	md := docmerge.MustDocument(docmerge.Open("a.docx", "b.docx").ToMarkdown())
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
