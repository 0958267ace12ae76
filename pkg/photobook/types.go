package photobook

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the metadata record for one uploaded image. Records are immutable
// once created; the only lifecycle transition is deletion.
type Photo struct {
	// ID is generated at upload time and never reused.
	ID uuid.UUID `json:"id"`

	// OriginalFileName is the client-supplied name, at most 256 characters.
	OriginalFileName string `json:"original_file_name"`

	// StorageKey is the blob store key, derived as lower-cased ID plus the
	// original extension, at most 512 characters.
	StorageKey string `json:"storage_key"`

	// Description is the caption produced by content analysis, nil when the
	// analyzer returned nothing. At most 4000 characters.
	Description *string `json:"description,omitempty"`

	// UploadedAt is the creation timestamp in UTC.
	UploadedAt time.Time `json:"uploaded_at"`
}

// Caption is a single analysis result: a short natural-language description
// of image content with the analyzer's confidence in it.
type Caption struct {
	Text       string
	Confidence float64
}
