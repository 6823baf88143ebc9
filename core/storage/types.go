package storage

import "time"

// UploadOptions tunes a single upload. Empty fields fall back to the
// defaults configured on the Bucket.
type UploadOptions struct {
	ContentType  string
	Metadata     map[string]string
	CacheControl string
	StorageClass string
	// Encryption is "AES256" for SSE-S3 or "none".
	Encryption string
}

// UploadResult describes a completed upload.
type UploadResult struct {
	Key         string    `json:"key"`
	Bucket      string    `json:"bucket"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	ETag        string    `json:"etag,omitempty"`
	VersionID   string    `json:"versionId,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ByteRange is an inclusive byte range. End < 0 reads to the end of the object.
type ByteRange struct {
	Start int64
	End   int64
}

// DownloadOptions carries the optional range and conditional headers.
type DownloadOptions struct {
	Range             *ByteRange
	IfMatch           string
	IfNoneMatch       string
	IfModifiedSince   time.Time
	IfUnmodifiedSince time.Time
}

// DownloadResult holds the payload and the object's metadata. ContentRange is
// set only when part of the object was read, e.g. "bytes 2-5/*".
type DownloadResult struct {
	Key          string            `json:"key"`
	Body         []byte            `json:"-"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"contentType"`
	ETag         string            `json:"etag,omitempty"`
	LastModified time.Time         `json:"lastModified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	ContentRange string            `json:"contentRange,omitempty"`
	Elapsed      time.Duration     `json:"elapsed"`
	DownloadedAt time.Time         `json:"downloadedAt"`
}

// DeleteResult confirms a deletion.
type DeleteResult struct {
	Key       string    `json:"key"`
	Deleted   bool      `json:"deleted"`
	DeletedAt time.Time `json:"deletedAt"`
}

// ObjectError is a per-object failure reported by a batch delete.
type ObjectError struct {
	Key     string `json:"key"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// BatchDeleteResult aggregates all chunks of a batch delete.
type BatchDeleteResult struct {
	Requested    int           `json:"requested"`
	DeletedCount int           `json:"deletedCount"`
	Chunks       int           `json:"chunks"`
	Errors       []ObjectError `json:"errors"`
	CompletedAt  time.Time     `json:"completedAt"`
}

// ListOptions selects one listing page.
type ListOptions struct {
	Prefix            string
	ContinuationToken string
	Delimiter         string
	StartAfter        string
	FetchOwner        bool
	// MaxKeys defaults to 1000, which is also the upper bound.
	MaxKeys int
}

// ObjectEntry is one listed object.
type ObjectEntry struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"lastModified"`
	StorageClass string    `json:"storageClass,omitempty"`
	Owner        string    `json:"owner,omitempty"`
}

// ListResult is one listing page.
type ListResult struct {
	Prefix                string        `json:"prefix,omitempty"`
	Objects               []ObjectEntry `json:"objects"`
	CommonPrefixes        []string      `json:"commonPrefixes,omitempty"`
	KeyCount              int           `json:"keyCount"`
	HasMore               bool          `json:"hasMore"`
	NextContinuationToken string        `json:"nextContinuationToken,omitempty"`
	ListedAt              time.Time     `json:"listedAt"`
}

// ObjectMetadata is the result of a metadata query. Only Key, Exists and
// CheckedAt are set when the object does not exist.
type ObjectMetadata struct {
	Key          string            `json:"key"`
	Exists       bool              `json:"exists"`
	Size         int64             `json:"size,omitempty"`
	ContentType  string            `json:"contentType,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	LastModified time.Time         `json:"lastModified,omitempty"`
	StorageClass string            `json:"storageClass,omitempty"`
	VersionID    string            `json:"versionId,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CheckedAt    time.Time         `json:"checkedAt"`
}

// SignOperation is the access a signed URL grants.
type SignOperation string

const (
	SignRead  SignOperation = "read"
	SignWrite SignOperation = "write"
)

// SignedURL is a time-limited URL for one object.
type SignedURL struct {
	Key       string        `json:"key"`
	URL       string        `json:"url"`
	Operation SignOperation `json:"operation"`
	ExpiresIn int64         `json:"expiresIn"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// HealthState is healthy or unhealthy.
type HealthState string

const (
	Healthy   HealthState = "healthy"
	Unhealthy HealthState = "unhealthy"
)

// HealthStatus is recomputed on every check.
type HealthStatus struct {
	Status       HealthState   `json:"status"`
	Bucket       string        `json:"bucket"`
	ResponseTime time.Duration `json:"responseTime,omitempty"`
	Error        string        `json:"error,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}
