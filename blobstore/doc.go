// Package blobstore reads tree sets from, and writes reports to, local or
// remote storage.
//
// # Built-in Implementations
//
//   - LocalStore: local file system; reads are memory-mapped
//   - MemoryStore: in-process map, used by tests
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Locations
//
// Resolve turns a location into a store and a blob name. Plain paths and
// file:// URIs use a LocalStore; other schemes are provided by packages that
// call Register, usually from an init function:
//
//	import _ "github.com/hupe1980/splitmatch/blobstore/s3"
//
//	store, name, err := blobstore.Resolve(ctx, "s3://bucket/run-1/trees.nwk")
package blobstore
