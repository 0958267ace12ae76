package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/photobook/photobook/pkg/photobook"
)

// Backend is a filesystem implementation of the photobook.BlobStore interface
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// New creates a new filesystem storage backend
func New(config Config) (photobook.BlobStore, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// path maps a key to a file path. Keys are lower-cased and stripped to their
// base name; storage keys are flat uuid-derived names, never paths.
func (b *Backend) path(key string) string {
	return filepath.Join(b.baseDir, filepath.Base(strings.ToLower(key)))
}

// Save writes the object to disk, refusing to replace an existing file
// unless overwrite is set
func (b *Backend) Save(ctx context.Context, key string, data io.ReadSeeker, overwrite bool) error {
	filePath := b.path(key)

	if !overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return photobook.ErrBlobExists
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check file: %w", err)
		}
	}

	if _, err := data.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind data: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Open returns a read stream over the stored file
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(b.path(key))
	if os.IsNotExist(err) {
		return nil, photobook.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the file; a missing file is a no-op
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a file is stored under the key
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := os.Stat(b.path(key)); err == nil {
		return true, nil
	} else if os.IsNotExist(err) {
		return false, nil
	} else {
		return false, fmt.Errorf("failed to check file: %w", err)
	}
}
