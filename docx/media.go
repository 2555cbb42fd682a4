package docx

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tsawler/docmerge/model"
)

// ErrMediaNotFound is returned when a relationship id does not resolve to
// a part inside the package.
var ErrMediaNotFound = errors.New("docx: media not found")

var _ model.MediaSource = (*Reader)(nil)

// OpenImage opens the package part referenced by relID. The caller must
// close the returned reader.
func (r *Reader) OpenImage(relID string) (io.ReadCloser, error) {
	rel, ok := r.rels[relID]
	if !ok {
		return nil, fmt.Errorf("%w: relationship %q", ErrMediaNotFound, relID)
	}
	if strings.EqualFold(rel.TargetMode, "External") {
		return nil, fmt.Errorf("%w: relationship %q targets external %q", ErrMediaNotFound, relID, rel.Target)
	}

	name := partName(rel.Target)
	f := r.files[name]
	if f == nil {
		return nil, fmt.Errorf("%w: part %q", ErrMediaNotFound, name)
	}
	return f.Open()
}

// partName resolves a relationship target relative to word/document.xml.
func partName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join("word", target))
}
