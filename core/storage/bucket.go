package storage

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Bucket is the storage facade. It is bound to one bucket for its lifetime
// and is safe for concurrent use; concurrent writes to the same key are not
// coordinated.
type Bucket struct {
	client   Client
	name     string
	defaults UploadOptions
	logger   *zap.Logger
	now      func() time.Time
}

// NewBucket creates the facade for cfg.Bucket.
func NewBucket(client Client, cfg Config, logger *zap.Logger) *Bucket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bucket{
		client: client,
		name:   cfg.Bucket,
		defaults: UploadOptions{
			ContentType:  cfg.ContentType,
			CacheControl: cfg.CacheControl,
			StorageClass: cfg.StorageClass,
			Encryption:   cfg.Encryption,
		},
		logger: logger.With(zap.String("bucket", cfg.Bucket)),
		now:    time.Now,
	}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

func validKey(key string) bool {
	return strings.TrimSpace(key) != ""
}

// fail logs a remote failure and returns it unchanged.
func (b *Bucket) fail(op Op, key string, err error) error {
	b.logger.Error("Storage operation failed",
		zap.String("op", string(op)),
		zap.String("key", key),
		zap.Error(err))
	return err
}
