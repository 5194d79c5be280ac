package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/storage"
)

const maxParallelUploads = 4

// ErrNoFile is returned for an empty upload or an empty batch.
var ErrNoFile = errors.New("no file provided")

// File is one file to upload.
type File struct {
	Name string
	Data []byte
}

// TooLargeError rejects a file over the size limit.
type TooLargeError struct {
	Name     string
	Size     int64
	MaxBytes int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: file size exceeds %s limit", e.Name, humanBytes(e.MaxBytes))
}

// TypeError rejects a file whose detected content type is not allowed.
type TypeError struct {
	Name    string
	Type    string
	Allowed []string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: file type %s not allowed. Allowed types: %s", e.Name, e.Type, strings.Join(e.Allowed, ", "))
}

// UploadService sends images to the backend's /upload endpoint and returns
// their public URLs. Content types are sniffed from the bytes, not taken
// from the file name.
type UploadService struct {
	api          *fxhttp.Client
	maxBytes     int64
	allowedTypes []string
	disk         func(name string) (storage.Disk, error)
}

// Validate checks f against the size limit and allowed types and returns
// the detected MIME type.
func (s *UploadService) Validate(f File) (string, error) {
	if len(f.Data) == 0 {
		return "", ErrNoFile
	}
	if s.maxBytes > 0 && int64(len(f.Data)) > s.maxBytes {
		return "", &TooLargeError{Name: f.Name, Size: int64(len(f.Data)), MaxBytes: s.maxBytes}
	}

	m := mimetype.Detect(f.Data)
	for _, t := range s.allowedTypes {
		if m.Is(t) {
			return m.String(), nil
		}
	}
	return "", &TypeError{Name: f.Name, Type: m.String(), Allowed: s.allowedTypes}
}

// Upload validates and sends one file.
func (s *UploadService) Upload(ctx context.Context, f File) (string, error) {
	ct, err := s.Validate(f)
	if err != nil {
		return "", err
	}
	name := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
	return fxhttp.Fetch[string](s.api.Post(ctx, "/upload").File("file", name, ct, f.Data))
}

// UploadMany uploads files concurrently. URLs are returned in input order.
// The first failure cancels the rest and is returned.
func (s *UploadService) UploadMany(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	for _, f := range files {
		if _, err := s.Validate(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		g.Go(func() error {
			u, err := s.Upload(gctx, f)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// UploadFromDisk reads p from the named storage disk ("" for the default)
// and uploads it.
func (s *UploadService) UploadFromDisk(ctx context.Context, diskName, p string) (string, error) {
	disk, err := s.disk(diskName)
	if err != nil {
		return "", err
	}
	data, err := disk.Get(ctx, p)
	if err != nil {
		return "", err
	}
	return s.Upload(ctx, File{Name: path.Base(p), Data: data})
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
