package storage

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/minio/minio-go/v7"
)

type objectStatter interface {
	Stat() (minio.ObjectInfo, error)
}

// Download reads the object under key into memory.
func (b *Bucket) Download(ctx context.Context, key string, opts DownloadOptions) (*DownloadResult, error) {
	if !validKey(key) {
		return nil, missingKey(OpDownload)
	}

	getOpts, err := getObjectOptions(opts)
	if err != nil {
		return nil, err
	}

	start := b.now()
	reader, err := b.client.GetObject(ctx, b.name, key, getOpts)
	if err != nil {
		return nil, b.fail(OpDownload, key, classify(OpDownload, key, err))
	}
	defer reader.Close()

	// minio resolves the request lazily, so missing objects surface here.
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, b.fail(OpDownload, key, classify(OpDownload, key, err))
	}

	result := &DownloadResult{
		Key:  key,
		Body: body,
		Size: int64(len(body)),
	}
	if s, ok := reader.(objectStatter); ok {
		if info, err := s.Stat(); err == nil {
			result.ContentType = info.ContentType
			result.ETag = info.ETag
			result.LastModified = info.LastModified
			result.Metadata = info.UserMetadata
		}
	}
	if result.ContentType == "" {
		result.ContentType = b.defaults.ContentType
	}

	if r := requestedRange(opts.Range); r != nil && len(body) > 0 {
		result.ContentRange = contentRange(*r, int64(len(body)))
	}

	finished := b.now()
	result.Elapsed = finished.Sub(start)
	result.DownloadedAt = finished
	return result, nil
}

func getObjectOptions(opts DownloadOptions) (minio.GetObjectOptions, error) {
	var getOpts minio.GetObjectOptions

	invalid := func(field string, err error) error {
		return &ValidationError{Op: OpDownload, Field: field, Reason: err.Error()}
	}

	if r := opts.Range; r != nil {
		switch {
		case r.Start < 0:
			return getOpts, invalid("range", fmt.Errorf("start %d is negative", r.Start))
		case r.End >= 0 && r.End < r.Start:
			return getOpts, invalid("range", fmt.Errorf("end %d is before start %d", r.End, r.Start))
		case r.End < 0 && r.Start == 0:
			// whole object
		case r.End < 0:
			if err := getOpts.SetRange(r.Start, 0); err != nil {
				return getOpts, invalid("range", err)
			}
		default:
			if err := getOpts.SetRange(r.Start, r.End); err != nil {
				return getOpts, invalid("range", err)
			}
		}
	}
	if opts.IfMatch != "" {
		if err := getOpts.SetMatchETag(opts.IfMatch); err != nil {
			return getOpts, invalid("ifMatch", err)
		}
	}
	if opts.IfNoneMatch != "" {
		if err := getOpts.SetMatchETagExcept(opts.IfNoneMatch); err != nil {
			return getOpts, invalid("ifNoneMatch", err)
		}
	}
	if !opts.IfModifiedSince.IsZero() {
		if err := getOpts.SetModified(opts.IfModifiedSince); err != nil {
			return getOpts, invalid("ifModifiedSince", err)
		}
	}
	if !opts.IfUnmodifiedSince.IsZero() {
		if err := getOpts.SetUnmodified(opts.IfUnmodifiedSince); err != nil {
			return getOpts, invalid("ifUnmodifiedSince", err)
		}
	}
	return getOpts, nil
}

// requestedRange returns the range actually sent upstream, or nil when the
// whole object is fetched.
func requestedRange(r *ByteRange) *ByteRange {
	if r == nil || (r.Start == 0 && r.End < 0) {
		return nil
	}
	return r
}

// contentRange formats the Content-Range of n bytes read from r. The complete
// length is known only when the read reached the end of the object.
func contentRange(r ByteRange, n int64) string {
	end := r.Start + n - 1
	total := "*"
	if r.End < 0 || end < r.End {
		total = strconv.FormatInt(end+1, 10)
	}
	return fmt.Sprintf("bytes %d-%d/%s", r.Start, end, total)
}
