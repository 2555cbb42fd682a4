package mock

import "github.com/tsawler/docmerge/merge"

var _ merge.ImageDescriber = (*ImageDescriber)(nil)

// ImageDescriber is a mock implementation of merge.ImageDescriber.
type ImageDescriber struct {
	DescribeFn func(data []byte) (string, error)
}

func (d *ImageDescriber) Describe(data []byte) (string, error) {
	return d.DescribeFn(data)
}
