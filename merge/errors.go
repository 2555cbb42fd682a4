package merge

import (
	"errors"
	"fmt"
)

// ErrInvalidTable is wrapped by MergeError when a table cannot take part in
// a merge.
var ErrInvalidTable = errors.New("invalid table")

// ErrUnknownNode is returned by classifiers for raw nodes of unknown kind.
var ErrUnknownNode = errors.New("unknown node kind")

// ParseError reports a body node that could not be classified. It aborts
// the merge.
type ParseError struct {
	Doc    string // source name, may be empty
	Source int    // index of the source in the merge input
	Node   int    // index of the node in the source body, -1 for the container
	Err    error
}

func (e *ParseError) Error() string {
	where := fmt.Sprintf("source %d", e.Source)
	if e.Doc != "" {
		where = fmt.Sprintf("%s (source %d)", e.Doc, e.Source)
	}
	if e.Node < 0 {
		return fmt.Sprintf("parse error in %s: %v", where, e.Err)
	}
	return fmt.Sprintf("parse error in %s at node %d: %v", where, e.Node, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MergeError reports a structurally invalid table met while resolving table
// groups. It aborts the merge.
type MergeError struct {
	Heading    string
	Subheading string
	Table      int // index of the table among the bucket's tables
	Reason     string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge error under heading %q, sub-heading %q, table %d: %s",
		e.Heading, e.Subheading, e.Table, e.Reason)
}

func (e *MergeError) Unwrap() error {
	return ErrInvalidTable
}

// ImageExtractionError reports an inline image whose payload could not be
// copied out of its source. The merge recovers by omitting the image.
type ImageExtractionError struct {
	Doc   string
	RelID string
	Err   error
}

func (e *ImageExtractionError) Error() string {
	return fmt.Sprintf("image %s in %s: %v", e.RelID, e.Doc, e.Err)
}

func (e *ImageExtractionError) Unwrap() error {
	return e.Err
}
