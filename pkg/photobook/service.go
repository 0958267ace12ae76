package photobook

import (
	"context"

	"github.com/google/uuid"
)

// Service is the ingestion and retrieval pipeline for photos.
type Service interface {
	// Upload validates the file, captions it (best effort), writes the blob
	// and then inserts the metadata record. The record is returned fully
	// populated. No record is created when the blob write fails.
	Upload(ctx context.Context, req UploadRequest) (*Photo, error)

	// Get returns the metadata record for the id.
	Get(ctx context.Context, id uuid.UUID) (*Photo, error)

	// Download resolves the record and opens the stored binary. A record
	// whose blob is missing surfaces ErrBlobNotFound rather than empty
	// content.
	Download(ctx context.Context, id uuid.UUID) (*DownloadResult, error)

	// Delete removes the blob first and the record second. Deleting a photo
	// whose blob is already gone still removes the record.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all records ordered by original file name ascending.
	List(ctx context.Context) ([]*Photo, error)
}
