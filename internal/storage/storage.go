// Package storage abstracts the object store so that the upload
// pipeline and the serving endpoints don't care whether blobs live
// in S3 or in memory during tests
package storage

import (
	"context"
	"io"
)

// Object describes a stored blob opened for reading
type Object struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
}

type ObjectStore interface {
	// Put stores the blob under name and returns its addressable URL
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)

	// Get opens the blob for streaming. Callers close Body
	Get(ctx context.Context, name string) (*Object, error)

	Delete(ctx context.Context, name string) error
}
