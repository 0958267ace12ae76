package photobook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrPhotoNotFound indicates no metadata record exists for the id.
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrPhotoExists indicates a metadata insert hit the primary-key
	// constraint.
	ErrPhotoExists = errors.New("photo already exists")

	// ErrBlobNotFound indicates the blob store has no object at the key.
	// On a fetch where the record exists, this is store divergence.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobExists indicates a non-overwrite save found an object already
	// stored at the key.
	ErrBlobExists = errors.New("blob already exists")

	// ErrInvalidImage indicates the upload failed the image content-type
	// and extension check.
	ErrInvalidImage = errors.New("file is not a supported image")

	// ErrNoFile indicates the request carried no file to ingest.
	ErrNoFile = errors.New("no file provided")
)

// PhotoError wraps a failure in a pipeline operation for a specific photo.
type PhotoError struct {
	PhotoID uuid.UUID
	Op      string
	Err     error
}

func (e *PhotoError) Error() string {
	return fmt.Sprintf("photo operation %s failed for %s: %v", e.Op, e.PhotoID, e.Err)
}

func (e *PhotoError) Unwrap() error {
	return e.Err
}

// StorageError wraps a blob store failure. Anything wrapped in a
// StorageError that is not one of the sentinel errors above is an upstream
// backend failure.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
