package memory

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/photobook/photobook/pkg/photobook"
)

// Backend is an in-memory implementation of the photobook.BlobStore interface
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend
func New() photobook.BlobStore {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// Save stores the object, rejecting a second write to the same key unless
// overwrite is set
func (b *Backend) Save(ctx context.Context, key string, data io.ReadSeeker, overwrite bool) error {
	key = strings.ToLower(key)

	if _, err := data.Seek(0, io.SeekStart); err != nil {
		return err
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; exists && !overwrite {
		return photobook.ErrBlobExists
	}

	b.objects[key] = buf
	b.contentTypes[key] = photobook.MimeTypeByExtension(key)
	return nil
}

// Open returns a reader over the stored bytes
func (b *Backend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[strings.ToLower(key)]
	if !exists {
		return nil, photobook.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the object; a missing key is a no-op
func (b *Backend) Delete(ctx context.Context, key string) error {
	key = strings.ToLower(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, key)
	delete(b.contentTypes, key)
	return nil
}

// Exists reports whether the key holds an object
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[strings.ToLower(key)]
	return exists, nil
}

// ContentType returns the content type recorded for a stored object. Test
// helper; not part of the BlobStore contract.
func (b *Backend) ContentType(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.contentTypes[strings.ToLower(key)]
}

// Len returns the number of stored objects. Test helper.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.objects)
}
