// Package blob stores donation images. Callers treat it as opaque: an upload
// yields a public URL and a handle that can later delete the object.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrEmptyUpload is returned when an upload carries no bytes.
var ErrEmptyUpload = errors.New("empty upload")

// Upload is a single file to store.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Object is a stored file.
type Object struct {
	URL    string
	Handle string
}

// Store persists and removes blobs. A failed Upload must not leave a partial
// object behind.
type Store interface {
	Upload(ctx context.Context, upload Upload) (*Object, error)
	Delete(ctx context.Context, handle string) error
}
