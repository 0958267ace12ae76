package photobook

import "io"

// UploadRequest contains the inputs for ingesting one photo.
type UploadRequest struct {
	// FileName is the client-supplied name; its extension drives both
	// validation and the derived storage key.
	FileName string

	// ContentType is the MIME type the client declared for the file part.
	ContentType string

	// Data is the image binary. The pipeline buffers it fully: both the
	// analyzer call and the blob write need a seekable stream.
	Data io.Reader
}

// DownloadResult is an open read stream over a photo's binary together with
// the content type resolved from the original file name. The caller owns
// closing Body.
type DownloadResult struct {
	Photo       *Photo
	Body        io.ReadCloser
	ContentType string
}
