// Package local implements the local filesystem storage adapter.
// The bucket maps to a subdirectory under the configured base path.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage implements the storage.Storage interface using the local filesystem.
type Storage struct {
	basePath string
}

// New creates a new local storage adapter.
// basePath is the root directory for storing files (e.g., "data/uploads").
func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "data/uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &Storage{basePath: basePath}, nil
}

// PutObject writes a file to the local filesystem.
func (s *Storage) PutObject(ctx context.Context, bucket, key string, data io.Reader, contentType string, size int64) error {
	fullPath, err := s.keyToPath(bucket, key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// DeleteObject removes a file from the local filesystem.
// Deleting a missing key is a no-op, matching the S3 contract.
func (s *Storage) DeleteObject(ctx context.Context, bucket, key string) error {
	fullPath, err := s.keyToPath(bucket, key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete file: %w", err)
	}

	return nil
}

// ObjectExists checks if a file exists on the local filesystem.
func (s *Storage) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	fullPath, err := s.keyToPath(bucket, key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}

	return true, nil
}

// Type returns "local" as the storage type identifier.
func (s *Storage) Type() string {
	return "local"
}

// keyToPath maps a bucket/key pair onto the base path, rejecting traversal.
func (s *Storage) keyToPath(bucket, key string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("bucket name is required")
	}
	cleaned := filepath.Clean(filepath.Join(bucket, filepath.FromSlash(key)))
	if strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return filepath.Join(s.basePath, cleaned), nil
}
