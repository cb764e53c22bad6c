package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes blobs to a directory served by the HTTP server.
type LocalStore struct {
	dir     string
	baseURL string
	maxSize int64
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates dir if needed. URLs are baseURL + "/" + file name.
func NewLocalStore(dir, baseURL string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), maxSize: maxSize}, nil
}

// Upload writes to a temp file and renames it into place once complete.
func (s *LocalStore) Upload(ctx context.Context, upload Upload) (*Object, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	body := upload.Body
	if s.maxSize > 0 {
		body = io.LimitReader(body, s.maxSize+1)
	}
	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: body})
	if err != nil {
		return nil, fmt.Errorf("write blob: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyUpload
	}
	if s.maxSize > 0 && n > s.maxSize {
		return nil, fmt.Errorf("blob exceeds %d bytes", s.maxSize)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return nil, fmt.Errorf("commit blob: %w", err)
	}
	committed = true

	return &Object{URL: s.baseURL + "/" + name, Handle: name}, nil
}

// Delete removes a stored blob. Deleting a missing blob is not an error.
func (s *LocalStore) Delete(_ context.Context, handle string) error {
	if handle == "" || handle != filepath.Base(handle) {
		return fmt.Errorf("invalid blob handle %q", handle)
	}
	if err := os.Remove(filepath.Join(s.dir, handle)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
