package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// BlobStore stores named, immutable blobs. Implementations must be safe for
// concurrent use.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create starts a streaming write. The blob becomes visible when the
	// returned writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Put writes a blob in one call.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read handle to a blob.
type Blob interface {
	io.Reader
	io.Closer

	// Size returns the size of the blob in bytes, or -1 if unknown.
	Size() int64
}

// WritableBlob is a write handle to a blob.
type WritableBlob interface {
	io.Writer
	io.Closer

	// Abort discards everything written. The blob does not become visible.
	Abort() error
}

// Mappable is implemented by blobs whose contents are memory-mapped.
type Mappable interface {
	// Bytes returns the mapped contents, valid until the blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll reads a whole blob.
func ReadAll(ctx context.Context, s BlobStore, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}
	return io.ReadAll(b)
}
