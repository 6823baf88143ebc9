package files

import (
	"context"
	"time"

	"filevault/core/storage"

	"go.uber.org/zap"
)

// Service runs file operations against one bucket.
type Service struct {
	bucket *storage.Bucket
	logger *zap.Logger
}

// NewService creates a new files service.
func NewService(bucket *storage.Bucket, logger *zap.Logger) *Service {
	return &Service{
		bucket: bucket,
		logger: logger,
	}
}

// Upload stores data under key.
func (s *Service) Upload(ctx context.Context, key string, data []byte, opts storage.UploadOptions) (*storage.UploadResult, error) {
	return s.bucket.Upload(ctx, key, data, opts)
}

// Download fetches key.
func (s *Service) Download(ctx context.Context, key string, opts storage.DownloadOptions) (*storage.DownloadResult, error) {
	return s.bucket.Download(ctx, key, opts)
}

// Delete removes key.
func (s *Service) Delete(ctx context.Context, key string) (*storage.DeleteResult, error) {
	return s.bucket.Delete(ctx, key)
}

// BatchDelete removes every key.
func (s *Service) BatchDelete(ctx context.Context, keys []string) (*storage.BatchDeleteResult, error) {
	return s.bucket.BatchDelete(ctx, keys)
}

// List returns one page of objects.
func (s *Service) List(ctx context.Context, opts storage.ListOptions) (*storage.ListResult, error) {
	return s.bucket.List(ctx, opts)
}

// Metadata describes key.
func (s *Service) Metadata(ctx context.Context, key string) (*storage.ObjectMetadata, error) {
	return s.bucket.Metadata(ctx, key)
}

// Presence reports whether key exists and, if so, its size.
type Presence struct {
	Key    string `json:"key"`
	Exists bool   `json:"exists"`
	Size   *int64 `json:"size,omitempty"`
}

// Presence resolves existence and size from one lookup. Lookup failures read
// as absent.
func (s *Service) Presence(ctx context.Context, key string) Presence {
	p := Presence{Key: key}
	if size, ok := s.bucket.Size(ctx, key); ok {
		p.Exists = true
		p.Size = &size
	}
	return p
}

// Sign creates a signed URL.
func (s *Service) Sign(ctx context.Context, key string, op storage.SignOperation, expiry time.Duration) (*storage.SignedURL, error) {
	return s.bucket.SignedURL(ctx, key, op, expiry)
}
