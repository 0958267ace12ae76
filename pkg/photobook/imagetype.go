package photobook

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Content types accepted on upload. Both this check and the extension check
// must pass; a mismatch between the declared type and the extension rejects
// the upload.
var imageContentTypes = map[string]struct{}{
	"image/jpg":   {},
	"image/jpeg":  {},
	"image/pjpeg": {},
	"image/gif":   {},
	"image/x-png": {},
	"image/png":   {},
}

// Extension to MIME type table. Fetch responses resolve their content type
// from here using the original file name, never from what the client
// declared at upload time.
var extensionMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// IsImage reports whether the declared content type and the file name
// extension both identify a supported image format.
func IsImage(fileName, contentType string) bool {
	if _, ok := imageContentTypes[strings.ToLower(contentType)]; !ok {
		return false
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	_, ok := extensionMimeTypes[ext]
	return ok
}

// MimeTypeByExtension resolves a MIME type from the file name extension,
// falling back to application/octet-stream for anything unknown.
func MimeTypeByExtension(fileName string) string {
	if mime, ok := extensionMimeTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// StorageKey derives the blob store key for a photo: the lower-cased id
// followed by the original extension. Ids are generated per upload and never
// recycled, so keys never collide across records.
func StorageKey(id uuid.UUID, fileName string) string {
	return strings.ToLower(id.String() + filepath.Ext(fileName))
}
