package photobook

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// BlobStore defines the interface for durable key-addressed binary storage.
// Implementations normalize keys to lower case regardless of caller casing.
type BlobStore interface {
	// Save writes the object under key, tagging it with the content type
	// resolved from the key's extension. The reader is rewound to its start
	// before writing. When overwrite is false and an object already exists
	// at the key, Save fails with ErrBlobExists.
	Save(ctx context.Context, key string, data io.ReadSeeker, overwrite bool) error

	// Open returns a read stream positioned at the start of the object, or
	// ErrBlobNotFound if the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object if present. A missing object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under the key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Repository defines the interface for photo metadata persistence.
type Repository interface {
	// Insert adds a new record. The id must not already exist; a duplicate
	// fails with ErrPhotoExists.
	Insert(ctx context.Context, photo *Photo) error

	// FindByID returns the record or ErrPhotoNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Photo, error)

	// Delete removes the record by id, returning ErrPhotoNotFound if no row
	// existed.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll returns every record ordered by original file name ascending.
	// The order is deterministic: ties are broken by id.
	ListAll(ctx context.Context) ([]*Photo, error)
}

// Describer produces a best-effort caption for an image. Implementations
// buffer the stream fully before calling the analyzer. A nil Caption with a
// nil error means the analyzer produced no caption.
type Describer interface {
	Describe(ctx context.Context, image io.ReadSeeker) (*Caption, error)
}

// UsageSink receives analysis usage signals. It is fire-and-forget:
// implementations must not block or fail the calling operation.
type UsageSink interface {
	// AnalysisRequested is emitted before each analyzer call with the
	// payload size in bytes.
	AnalysisRequested(ctx context.Context, payloadBytes int64)

	// CaptionProduced is emitted when the analyzer returned a caption.
	CaptionProduced(ctx context.Context, confidence float64)
}
