package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when a stored report file is absent.
var ErrObjectNotFound = errors.New("storage: object not found")

// BlobStore persists rendered report files.
type BlobStore interface {
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
