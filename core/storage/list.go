package storage

import (
	"context"
	"fmt"
)

// DefaultMaxKeys is the page size used when none is given.
const DefaultMaxKeys = 1000

// List returns one page of objects.
func (b *Bucket) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	maxKeys := opts.MaxKeys
	switch {
	case maxKeys < 0:
		return nil, &ValidationError{Op: OpList, Field: "maxKeys", Reason: fmt.Sprintf("%d is negative", maxKeys)}
	case maxKeys == 0 || maxKeys > DefaultMaxKeys:
		maxKeys = DefaultMaxKeys
	}

	page, err := b.client.ListObjectsPage(ctx, b.name, PageQuery{
		Prefix:            opts.Prefix,
		StartAfter:        opts.StartAfter,
		ContinuationToken: opts.ContinuationToken,
		Delimiter:         opts.Delimiter,
		MaxKeys:           maxKeys,
	})
	if err != nil {
		return nil, b.fail(OpList, opts.Prefix, &OperationError{Op: OpList, Key: opts.Prefix, Err: err})
	}

	result := &ListResult{
		Prefix:   opts.Prefix,
		Objects:  make([]ObjectEntry, 0, len(page.Contents)),
		HasMore:  page.IsTruncated,
		ListedAt: b.now(),
	}
	if page.IsTruncated {
		result.NextContinuationToken = page.NextContinuationToken
	}

	for _, obj := range page.Contents {
		entry := ObjectEntry{
			Key:          obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
			StorageClass: obj.StorageClass,
		}
		if opts.FetchOwner {
			entry.Owner = obj.Owner.DisplayName
			if entry.Owner == "" {
				entry.Owner = obj.Owner.ID
			}
		}
		result.Objects = append(result.Objects, entry)
	}
	for _, p := range page.CommonPrefixes {
		result.CommonPrefixes = append(result.CommonPrefixes, p.Prefix)
	}
	result.KeyCount = len(result.Objects) + len(result.CommonPrefixes)

	return result, nil
}
