// Package storage reads and writes image files on a local directory or an
// S3-compatible bucket. The upload flow uses it as a source: a crop photo
// can be pulled from either disk before it is sent to the backend's
// /upload endpoint.
//
//	if err := storage.Connect(ctx); err != nil { ... }
//	disk, err := storage.Use("s3")
//	data, err := disk.Get(ctx, "harvest/2024/wheat.jpg")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get and GetStream when path does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(ctx context.Context, path string) (io.ReadCloser, error)

	Exists(ctx context.Context, path string) bool

	Size(ctx context.Context, path string) (int64, error)

	// URL returns the public URL for path, or "" when the disk has none.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists the files directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
}
