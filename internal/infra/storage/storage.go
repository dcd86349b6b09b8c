// Package storage talks to the S3-compatible bucket that holds every uploaded
// file. Keys look like {folder}/{user_slug}/{name}.
package storage

import (
	"context"
	"io"
	"time"
)

const CacheControl = "max-age=31536000"

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	// RemovePrefix deletes every object under prefix and returns how many went.
	RemovePrefix(ctx context.Context, prefix string) (int, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	URL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// Default is set by Init and read by handlers and jobs.
var Default Store
