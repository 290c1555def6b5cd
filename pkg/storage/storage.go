package storage

// Package storage defines the object storage abstraction for product images.
// It provides a unified interface over S3-compatible object storage and a
// local filesystem backend used for development and tests.

import (
	"context"
	"io"
)

// Storage defines the interface for object storage operations.
//
// The bucket is passed on every call rather than fixed at construction:
// this service resolves the bucket name at request time from the base URL
// stored in the Configs table.
type Storage interface {
	// PutObject uploads a file to storage under the given bucket and key.
	PutObject(ctx context.Context, bucket, key string, data io.Reader, contentType string, size int64) error

	// DeleteObject removes an object. Deleting a missing key is a no-op.
	DeleteObject(ctx context.Context, bucket, key string) error

	// ObjectExists checks if an object exists in storage.
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)

	// Type returns the storage type identifier ("local" or "s3").
	Type() string
}
