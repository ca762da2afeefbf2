// Package blobstore is the Blob Store collaborator: durable bytes in, a
// public URL (and, for media, a thumbnail URL) out. The tree store records
// whatever URLs come back; upload failures are blob errors, never tree
// errors.
package blobstore

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned when a stored object cannot be located.
var ErrBlobNotFound = errors.New("blob not found")

// Upload is the result of placing a payload in the store.
type Upload struct {
	URL          string
	ThumbnailURL *string
}

// BlobStore defines the minimal API the tree store needs. The interface is
// intentionally tiny to support a lightweight in-memory fake in tests while
// enabling an S3-backed implementation for production.
type BlobStore interface {
	// Put stores the payload under key and returns its public URL. Media
	// content types additionally get a thumbnail URL.
	Put(ctx context.Context, key, contentType string, body []byte) (*Upload, error)

	// Remove deletes the object a previous Put returned fileURL for.
	Remove(ctx context.Context, fileURL string) error
}
