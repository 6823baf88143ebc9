package storage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// Op names a facade operation. Every remote failure is tagged with one.
type Op string

const (
	OpUpload      Op = "upload"
	OpDownload    Op = "download"
	OpDelete      Op = "delete"
	OpBatchDelete Op = "batch delete"
	OpList        Op = "list"
	OpMetadata    Op = "metadata"
	OpSign        Op = "sign"
)

// ValidationError reports missing or malformed input. It is always returned
// before any remote call is attempted.
type ValidationError struct {
	Op     Op
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

// NotFoundError means the remote confirmed the object does not exist.
type NotFoundError struct {
	Op  Op
	Key string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s failed: object %q not found", e.Op, e.Key)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// AccessError means the remote denied the request.
type AccessError struct {
	Op  Op
	Key string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s failed: access denied for %q: %v", e.Op, e.Key, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// OperationError wraps an unclassified remote failure. Op identifies which
// operation failed (UploadError, DownloadError and so on are all this type).
type OperationError struct {
	Op  Op
	Key string
	Err error
}

func (e *OperationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for %q: %v", e.Op, e.Key, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAccessDenied reports whether err is an AccessError.
func IsAccessDenied(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}

// OpOf returns the operation an error belongs to, or "" for foreign errors.
func OpOf(err error) Op {
	var (
		v  *ValidationError
		nf *NotFoundError
		ae *AccessError
		oe *OperationError
	)
	switch {
	case errors.As(err, &v):
		return v.Op
	case errors.As(err, &nf):
		return nf.Op
	case errors.As(err, &ae):
		return ae.Op
	case errors.As(err, &oe):
		return oe.Op
	}
	return ""
}

func missingKey(op Op) error {
	return &ValidationError{Op: op, Field: "key", Reason: "key is required"}
}

// classify maps a vendor error onto the facade taxonomy.
func classify(op Op, key string, err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Op: op, Key: key, Err: err}
	case resp.Code == "AccessDenied" || resp.StatusCode == http.StatusForbidden:
		return &AccessError{Op: op, Key: key, Err: err}
	}
	return &OperationError{Op: op, Key: key, Err: err}
}

// isMissing reports whether a vendor error means the object does not exist.
func isMissing(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound" || resp.StatusCode == http.StatusNotFound
}
