// Package storage is the object-storage collaborator. Engines never hold
// file bytes; they store the path this package returns.
package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type ObjectStorage interface {
	Upload(ctx context.Context, body io.Reader, filename, contentType, folder string) (string, error)
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) (bool, error)
}
