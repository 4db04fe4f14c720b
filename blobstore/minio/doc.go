// Package minio provides a blobstore.BlobStore for MinIO and other
// S3-compatible services (Ceph, Garage, SeaweedFS).
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := minioblob.NewStore(client, "trees", "runs/")
//
// Importing the package registers the minio:// scheme with
// blobstore.Resolve. The first path segment is the bucket, and credentials
// are read from MINIO_ACCESS_KEY and MINIO_SECRET_KEY:
//
//	minio://localhost:9000/trees/runs/forest.nwk?insecure=true
package minio
