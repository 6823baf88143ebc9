package files

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"filevault/core/storage"

	"github.com/gofiber/fiber/v2"
)

const metaHeaderPrefix = "x-meta-"

// uploadOptions reads upload options from the request headers.
func uploadOptions(c *fiber.Ctx) storage.UploadOptions {
	opts := storage.UploadOptions{
		ContentType:  c.Get(fiber.HeaderContentType),
		CacheControl: c.Get(fiber.HeaderCacheControl),
		StorageClass: c.Get("X-Storage-Class"),
		Encryption:   c.Get("X-Encryption"),
	}
	for name, values := range c.GetReqHeaders() {
		lower := strings.ToLower(name)
		if !strings.HasPrefix(lower, metaHeaderPrefix) || len(values) == 0 {
			continue
		}
		if opts.Metadata == nil {
			opts.Metadata = make(map[string]string)
		}
		opts.Metadata[strings.TrimPrefix(lower, metaHeaderPrefix)] = values[0]
	}
	return opts
}

// downloadOptions reads the range and conditional headers.
func downloadOptions(c *fiber.Ctx) (storage.DownloadOptions, error) {
	opts := storage.DownloadOptions{
		IfMatch:     c.Get(fiber.HeaderIfMatch),
		IfNoneMatch: c.Get(fiber.HeaderIfNoneMatch),
	}

	if raw := c.Get(fiber.HeaderRange); raw != "" {
		r, err := parseRange(raw)
		if err != nil {
			return opts, err
		}
		opts.Range = r
	}

	for header, dst := range map[string]*time.Time{
		fiber.HeaderIfModifiedSince:   &opts.IfModifiedSince,
		fiber.HeaderIfUnmodifiedSince: &opts.IfUnmodifiedSince,
	} {
		raw := c.Get(header)
		if raw == "" {
			continue
		}
		t, err := http.ParseTime(raw)
		if err != nil {
			return opts, &storage.ValidationError{Op: storage.OpDownload, Field: header, Reason: err.Error()}
		}
		*dst = t
	}
	return opts, nil
}

// parseRange accepts a single "bytes=start-end" or "bytes=start-" range.
// Suffix ranges and multiple ranges are rejected.
func parseRange(raw string) (*storage.ByteRange, error) {
	invalid := func(reason string) error {
		return &storage.ValidationError{Op: storage.OpDownload, Field: "range", Reason: reason}
	}

	set, ok := strings.CutPrefix(strings.TrimSpace(raw), "bytes=")
	if !ok {
		return nil, invalid(fmt.Sprintf("unsupported unit in %q", raw))
	}
	if strings.Contains(set, ",") {
		return nil, invalid("multiple ranges are not supported")
	}
	startRaw, endRaw, ok := strings.Cut(set, "-")
	if !ok || startRaw == "" {
		return nil, invalid(fmt.Sprintf("malformed range %q", raw))
	}

	start, err := strconv.ParseInt(startRaw, 10, 64)
	if err != nil {
		return nil, invalid(fmt.Sprintf("malformed start %q", startRaw))
	}
	r := &storage.ByteRange{Start: start, End: -1}
	if endRaw != "" {
		end, err := strconv.ParseInt(endRaw, 10, 64)
		if err != nil {
			return nil, invalid(fmt.Sprintf("malformed end %q", endRaw))
		}
		r.End = end
	}
	return r, nil
}

// listOptions reads listing parameters from the query string.
func listOptions(c *fiber.Ctx) (storage.ListOptions, error) {
	opts := storage.ListOptions{
		Prefix:            c.Query("prefix"),
		ContinuationToken: c.Query("continuation_token"),
		Delimiter:         c.Query("delimiter"),
		StartAfter:        c.Query("start_after"),
		FetchOwner:        c.QueryBool("fetch_owner", false),
	}
	if raw := c.Query("max_keys"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, &storage.ValidationError{Op: storage.OpList, Field: "maxKeys", Reason: fmt.Sprintf("%q is not a number", raw)}
		}
		opts.MaxKeys = n
	}
	return opts, nil
}

// BatchDeleteRequest is the body of POST /files/batch-delete.
type BatchDeleteRequest struct {
	Keys []string `json:"keys"`
}

// SignRequest is the body of POST /files/sign.
type SignRequest struct {
	Key       string `json:"key"`
	Operation string `json:"operation"`
	// ExpiresIn is in seconds, 0 for the default of one hour.
	ExpiresIn int64 `json:"expires_in"`
}
