// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "runs/")
//	forest, err := store.Open(ctx, "trees.nwk.zst")
//
// Importing the package registers the s3:// scheme with blobstore.Resolve.
// Credentials and region come from the default AWS configuration chain;
// a region query parameter overrides the region:
//
//	s3://my-bucket/runs/trees.nwk?region=eu-central-1
//
// Reports are streamed through multipart uploads with CRC32C checksums.
package s3
