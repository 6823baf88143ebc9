package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/encrypt"
)

// Upload stores data under key in a single PutObject call.
func (b *Bucket) Upload(ctx context.Context, key string, data []byte, opts UploadOptions) (*UploadResult, error) {
	if !validKey(key) {
		return nil, missingKey(OpUpload)
	}
	if len(data) == 0 {
		return nil, &ValidationError{Op: OpUpload, Field: "data", Reason: "payload is required"}
	}

	opts = b.withDefaults(opts)
	putOpts := minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
		StorageClass: opts.StorageClass,
		UserMetadata: opts.Metadata,
	}
	if strings.EqualFold(opts.Encryption, "AES256") {
		putOpts.ServerSideEncryption = encrypt.NewSSE()
	}

	info, err := b.client.PutObject(ctx, b.name, key, bytes.NewReader(data), int64(len(data)), putOpts)
	if err != nil {
		return nil, b.fail(OpUpload, key, &OperationError{Op: OpUpload, Key: key, Err: err})
	}

	size := info.Size
	if size == 0 {
		size = int64(len(data))
	}

	return &UploadResult{
		Key:         key,
		Bucket:      b.name,
		Size:        size,
		ContentType: opts.ContentType,
		ETag:        info.ETag,
		VersionID:   info.VersionID,
		UploadedAt:  b.now(),
	}, nil
}

func (b *Bucket) withDefaults(opts UploadOptions) UploadOptions {
	if opts.ContentType == "" {
		opts.ContentType = b.defaults.ContentType
	}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}
	if opts.CacheControl == "" {
		opts.CacheControl = b.defaults.CacheControl
	}
	if opts.StorageClass == "" {
		opts.StorageClass = b.defaults.StorageClass
	}
	if opts.Encryption == "" {
		opts.Encryption = b.defaults.Encryption
	}
	return opts
}
