package mock

import (
	"github.com/tsawler/docmerge/merge"
	"github.com/tsawler/docmerge/model"
)

var _ merge.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of merge.Classifier.
type Classifier struct {
	ClassifyFn func(node model.RawNode) (model.Node, error)
}

func (c *Classifier) Classify(node model.RawNode) (model.Node, error) {
	return c.ClassifyFn(node)
}
