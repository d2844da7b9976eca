// Package storage keeps uploaded binary objects (recipe covers) outside the database.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

type PutOptions struct {
	ContentType string
}

type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
}

// Store is the object storage used for cover images.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts *PutOptions) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns every object under prefix, following continuation markers.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
