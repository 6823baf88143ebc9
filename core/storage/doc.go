// Package storage provides the storage-access facade over one S3-compatible bucket.
//
// It wraps the MinIO Go client behind the Client interface and exposes Bucket,
// a handle constructed once at startup and passed to every caller. Each Bucket
// method translates a small argument set into a single client call and
// normalizes the result and the error.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
// NewClient configures the connection pool (max sockets, keep-alive), the
// connect/response timeouts and the retry count once per process.
//
// # Operations
//
//   - Upload / Download / Delete: single-object operations.
//   - BatchDelete: removes keys in sequential chunks of at most 1000.
//   - List: one ListObjectsV2 page with continuation tokens.
//   - Metadata / Exists / Size: HEAD-style lookups. Exists and Size never fail.
//   - SignedURL: presigned read or write URLs.
//   - HealthCheck: never fails; the outcome is data.
//
// # Errors
//
// Remote failures are returned as *NotFoundError, *AccessError or
// *OperationError (tagged with the Op that failed). Bad input is rejected with
// *ValidationError before any remote call.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	bucket := storage.NewBucket(client, cfg, logger)
//	res, err := bucket.Upload(ctx, "avatars/1.png", data, storage.UploadOptions{ContentType: "image/png"})
package storage
