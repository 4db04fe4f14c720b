package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
)

// Opener creates a store for a URI and returns the blob name inside it.
type Opener func(ctx context.Context, u *url.URL) (BlobStore, string, error)

var (
	openersMu sync.RWMutex
	openers   = make(map[string]Opener)
)

// Register makes a URI scheme available to Resolve.
// It panics if the scheme is registered twice.
func Register(scheme string, open Opener) {
	openersMu.Lock()
	defer openersMu.Unlock()

	scheme = strings.ToLower(scheme)
	if _, dup := openers[scheme]; dup {
		panic("blobstore: Register called twice for scheme " + scheme)
	}
	openers[scheme] = open
}

// Resolve returns the store and blob name for location, which is either a
// local path, a file:// URI, or a URI of a registered scheme.
func Resolve(ctx context.Context, location string) (BlobStore, string, error) {
	if location == "" {
		return nil, "", fmt.Errorf("blobstore: empty location")
	}

	scheme, _, ok := strings.Cut(location, "://")
	if !ok {
		return local(location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, "", fmt.Errorf("blobstore: %w", err)
	}
	if strings.EqualFold(scheme, "file") {
		return local(filepath.FromSlash(u.Host + u.Path))
	}

	openersMu.RLock()
	open, ok := openers[strings.ToLower(scheme)]
	openersMu.RUnlock()
	if !ok {
		return nil, "", fmt.Errorf("blobstore: unsupported scheme %q", scheme)
	}
	return open(ctx, u)
}

func local(path string) (BlobStore, string, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	if name == "" || name == "." {
		return nil, "", fmt.Errorf("blobstore: %q does not name a file", path)
	}
	if dir == "" {
		dir = "."
	}
	return NewLocalStore(dir), name, nil
}

// SplitBucketKey splits "/bucket/some/key" style paths used by S3-compatible
// schemes.
func SplitBucketKey(path string) (bucket, key string) {
	bucket, key, _ = strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return bucket, key
}
