// Package storage abstracts the blob-storage backends that hold custom UI
// assets. Two adapters implement the same capability contract: an
// S3-compatible one built on the MinIO client (AWS S3, MinIO, R2, ...) and
// an Azure Blob one built on the Azure SDK.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist in the
// backend. Adapters normalize their native not-found errors to this value.
var ErrNotFound = errors.New("object not found")

// ByteRange selects part of an object. Count == 0 means "from Offset to the
// end of the object".
type ByteRange struct {
	Offset int64
	Count  int64
}

// DownloadResult carries the (possibly ranged) object body together with the
// length and content type of the bytes actually returned.
type DownloadResult struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
}

// Properties is the metadata-only view of a stored object.
type Properties struct {
	ContentLength int64
	ContentType   string
}

// Storage is the capability contract every backend adapter implements.
type Storage interface {
	// Upload stores data under key and returns a publicly resolvable URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Download fetches the object body. A non-nil byteRange is forwarded to
	// the backend verbatim; adapters never download the full object and
	// slice locally.
	Download(ctx context.Context, key string, byteRange *ByteRange) (*DownloadResult, error)

	// Exists reports whether key is present. A missing object is
	// (false, nil); any other failure is a genuine error.
	Exists(ctx context.Context, key string) (bool, error)

	// Properties fetches object metadata without transferring the body.
	Properties(ctx context.Context, key string) (*Properties, error)

	// Delete removes the object identified by key.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all objects stored under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
