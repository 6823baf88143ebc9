package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// HealthCheck probes the bucket. Failures are encoded in the result.
func (b *Bucket) HealthCheck(ctx context.Context) HealthStatus {
	start := b.now()

	exists, err := b.client.BucketExists(ctx, b.name)
	if err == nil && !exists {
		err = fmt.Errorf("bucket %s does not exist", b.name)
	}
	if err != nil {
		b.logger.Warn("Storage health check failed", zap.Error(err))
		return HealthStatus{
			Status:    Unhealthy,
			Bucket:    b.name,
			Error:     err.Error(),
			Timestamp: b.now(),
		}
	}

	finished := b.now()
	return HealthStatus{
		Status:       Healthy,
		Bucket:       b.name,
		ResponseTime: finished.Sub(start),
		Timestamp:    finished,
	}
}

// EnsureBucket creates the bucket when it is missing.
func (b *Bucket) EnsureBucket(ctx context.Context, region string) error {
	exists, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.name, err)
	}
	b.logger.Info("Created missing bucket")
	return nil
}
