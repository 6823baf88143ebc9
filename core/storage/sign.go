package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const (
	// DefaultSignedURLExpiry applies when SignedURL is called with expiry 0.
	DefaultSignedURLExpiry = time.Hour
	// MaxSignedURLExpiry is the SigV4 presign limit.
	MaxSignedURLExpiry = 7 * 24 * time.Hour
)

// SignedURL creates a time-limited URL granting op on key. Unsupported
// operations and expiries are rejected before the client is touched.
func (b *Bucket) SignedURL(ctx context.Context, key string, op SignOperation, expiry time.Duration) (*SignedURL, error) {
	if !validKey(key) {
		return nil, missingKey(OpSign)
	}
	if op != SignRead && op != SignWrite {
		return nil, &ValidationError{Op: OpSign, Field: "operation", Reason: fmt.Sprintf("unsupported operation %q", op)}
	}
	switch {
	case expiry == 0:
		expiry = DefaultSignedURLExpiry
	case expiry < time.Second:
		return nil, &ValidationError{Op: OpSign, Field: "expiry", Reason: "must be at least one second"}
	case expiry > MaxSignedURLExpiry:
		return nil, &ValidationError{Op: OpSign, Field: "expiry", Reason: fmt.Sprintf("must not exceed %s", MaxSignedURLExpiry)}
	}

	var (
		u   *url.URL
		err error
	)
	if op == SignRead {
		u, err = b.client.PresignedGetObject(ctx, b.name, key, expiry, url.Values{})
	} else {
		u, err = b.client.PresignedPutObject(ctx, b.name, key, expiry)
	}
	if err != nil {
		return nil, b.fail(OpSign, key, &OperationError{Op: OpSign, Key: key, Err: err})
	}

	return &SignedURL{
		Key:       key,
		URL:       u.String(),
		Operation: op,
		ExpiresIn: int64(expiry / time.Second),
		ExpiresAt: b.now().Add(expiry),
	}, nil
}
