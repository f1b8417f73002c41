package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrKeyExists is returned by Put when the key is already taken and upsert
// was not requested.
var ErrKeyExists = errors.New("object already exists")

// Error wraps a failed object store operation
type Error struct {
	Op     string
	Bucket string
	Key    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ObjectStore is the bucket-scoped blob interface the pipeline consumes.
// Put rejects overwrites of an existing key unless upsert is set. SignGet
// mints a retrieval URL valid for at least ttl; callers must treat any URL
// as possibly expired by the time a slow consumer uses it.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, upsert bool) error
	SignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
