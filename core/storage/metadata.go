package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Metadata returns the object's metadata. A missing object is reported as
// Exists: false, not as an error.
func (b *Bucket) Metadata(ctx context.Context, key string) (*ObjectMetadata, error) {
	if !validKey(key) {
		return nil, missingKey(OpMetadata)
	}

	info, err := b.client.StatObject(ctx, b.name, key, minio.StatObjectOptions{})
	if err != nil {
		if isMissing(err) {
			return &ObjectMetadata{Key: key, Exists: false, CheckedAt: b.now()}, nil
		}
		return nil, b.fail(OpMetadata, key, &OperationError{Op: OpMetadata, Key: key, Err: err})
	}

	return &ObjectMetadata{
		Key:          key,
		Exists:       true,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		StorageClass: info.StorageClass,
		VersionID:    info.VersionID,
		Metadata:     info.UserMetadata,
		CheckedAt:    b.now(),
	}, nil
}

// Exists reports whether key is present. Every failure, including transient
// ones, yields false; use Metadata when the distinction matters.
func (b *Bucket) Exists(ctx context.Context, key string) bool {
	meta, err := b.Metadata(ctx, key)
	if err != nil {
		b.logger.Warn("Existence check failed, reporting absent", zap.String("key", key), zap.Error(err))
		return false
	}
	return meta.Exists
}

// Size returns the object's size. ok is false when the object is missing or
// the lookup failed for any reason.
func (b *Bucket) Size(ctx context.Context, key string) (size int64, ok bool) {
	meta, err := b.Metadata(ctx, key)
	if err != nil {
		b.logger.Warn("Size lookup failed, reporting absent", zap.String("key", key), zap.Error(err))
		return 0, false
	}
	if !meta.Exists {
		return 0, false
	}
	return meta.Size, true
}
