package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MaxBatchSize is the most object identifiers sent in one delete request.
const MaxBatchSize = 1000

// Delete removes the object under key. Deleting a missing key succeeds.
func (b *Bucket) Delete(ctx context.Context, key string) (*DeleteResult, error) {
	if !validKey(key) {
		return nil, missingKey(OpDelete)
	}

	if err := b.client.RemoveObject(ctx, b.name, key, minio.RemoveObjectOptions{}); err != nil {
		return nil, b.fail(OpDelete, key, &OperationError{Op: OpDelete, Key: key, Err: err})
	}

	return &DeleteResult{Key: key, Deleted: true, DeletedAt: b.now()}, nil
}

// BatchDelete removes keys in sequential chunks of at most MaxBatchSize.
// Per-object failures are reported in the result rather than returned.
func (b *Bucket) BatchDelete(ctx context.Context, keys []string) (*BatchDeleteResult, error) {
	if len(keys) == 0 {
		return nil, &ValidationError{Op: OpBatchDelete, Field: "keys", Reason: "at least one key is required"}
	}

	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if !validKey(key) {
			return nil, missingKey(OpBatchDelete)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}

	result := &BatchDeleteResult{
		Requested: len(unique),
		Errors:    []ObjectError{},
	}

	for start := 0; start < len(unique); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(unique) {
			end = len(unique)
		}
		chunk := unique[start:end]

		failed := b.deleteChunk(ctx, chunk)
		result.Chunks++
		result.DeletedCount += len(chunk) - len(failed)
		result.Errors = append(result.Errors, failed...)
	}

	if len(result.Errors) > 0 {
		b.logger.Warn("Batch delete finished with errors",
			zap.Int("requested", result.Requested),
			zap.Int("deleted", result.DeletedCount),
			zap.Int("failed", len(result.Errors)))
	}

	result.CompletedAt = b.now()
	return result, nil
}

func (b *Bucket) deleteChunk(ctx context.Context, chunk []string) []ObjectError {
	objectsCh := make(chan minio.ObjectInfo, len(chunk))
	for _, key := range chunk {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failed []ObjectError
	for rErr := range b.client.RemoveObjects(ctx, b.name, objectsCh, minio.RemoveObjectsOptions{}) {
		if rErr.Err == nil {
			continue
		}
		failed = append(failed, ObjectError{
			Key:     rErr.ObjectName,
			Code:    minio.ToErrorResponse(rErr.Err).Code,
			Message: rErr.Err.Error(),
		})
	}
	return failed
}
