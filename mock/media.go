package mock

import (
	"bytes"
	"io"
	"os"

	"github.com/tsawler/docmerge/model"
)

var _ model.MediaSource = (*MediaSource)(nil)

// MediaSource is a mock implementation of model.MediaSource.
type MediaSource struct {
	OpenImageFn func(relID string) (io.ReadCloser, error)
}

func (m *MediaSource) OpenImage(relID string) (io.ReadCloser, error) {
	return m.OpenImageFn(relID)
}

// Images returns a MediaSource serving payloads from a map and counting
// closes in *closed. Unknown ids fail with os.ErrNotExist.
func Images(payloads map[string][]byte, closed *int) *MediaSource {
	return &MediaSource{
		OpenImageFn: func(relID string) (io.ReadCloser, error) {
			data, ok := payloads[relID]
			if !ok {
				return nil, os.ErrNotExist
			}
			return &ReadCloser{Reader: bytes.NewReader(data), CloseFn: func() error {
				if closed != nil {
					*closed++
				}
				return nil
			}}, nil
		},
	}
}

// ReadCloser is an io.ReadCloser with a mockable Close.
type ReadCloser struct {
	io.Reader
	CloseFn func() error
}

func (r *ReadCloser) Close() error {
	return r.CloseFn()
}
