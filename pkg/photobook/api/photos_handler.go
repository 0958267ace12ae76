// Package api exposes the photobook service over HTTP.
package api

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/photobook/photobook/pkg/photobook"
)

// maxUploadBytes bounds how much of a multipart upload is spooled in memory
const maxUploadBytes = 32 << 20

// PhotosHandler handles HTTP requests for photos
type PhotosHandler struct {
	service photobook.Service
}

// NewPhotosHandler creates a new photos handler
func NewPhotosHandler(service photobook.Service) *PhotosHandler {
	return &PhotosHandler{service: service}
}

// Routes returns the routes for photos
func (h *PhotosHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPhotos)
	r.Post("/", h.UploadPhoto)
	r.Get("/{id}", h.DownloadPhoto)
	r.Delete("/{id}", h.DeletePhoto)

	return r
}

// PhotoResponse is the response body for a photo
type PhotoResponse struct {
	ID               string    `json:"id"`
	OriginalFileName string    `json:"original_file_name"`
	StorageKey       string    `json:"storage_key"`
	Description      *string   `json:"description,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

func toPhotoResponse(photo *photobook.Photo) PhotoResponse {
	return PhotoResponse{
		ID:               photo.ID.String(),
		OriginalFileName: photo.OriginalFileName,
		StorageKey:       photo.StorageKey,
		Description:      photo.Description,
		UploadedAt:       photo.UploadedAt.UTC(),
	}
}

// ListPhotos returns every stored photo ordered by file name
func (h *PhotosHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("Failed to list photos", "error", err)
		writeError(w, err)
		return
	}

	resp := make([]PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		resp = append(resp, toPhotoResponse(photo))
	}

	render.JSON(w, r, resp)
}

// UploadPhoto ingests a photo from a multipart form. The first file part
// is used regardless of its field name.
func (h *PhotosHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.Error("Invalid multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	header := firstFileHeader(r)
	if header == nil {
		slog.Error("No file part in upload")
		http.Error(w, "No file provided", http.StatusBadRequest)
		return
	}

	file, err := header.Open()
	if err != nil {
		slog.Error("Failed to open uploaded file", "file_name", header.Filename, "error", err)
		http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.service.Upload(r.Context(), photobook.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	})
	if err != nil {
		slog.Error("Failed to upload photo", "file_name", header.Filename, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Photo uploaded", "photo_id", photo.ID.String(), "file_name", photo.OriginalFileName)
	w.Header().Set("Location", "/photos/"+photo.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toPhotoResponse(photo))
}

// DownloadPhoto streams the photo bytes with the content type derived from
// the original file name.
func (h *PhotosHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid photo ID", "photo_id", idStr, "error", err)
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Download(r.Context(), id)
	if err != nil {
		slog.Error("Failed to download photo", "photo_id", idStr, "error", err)
		writeError(w, err)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)
	if _, err := io.Copy(w, result.Body); err != nil {
		slog.Warn("Failed to stream photo body", "photo_id", idStr, "error", err)
	}
}

// DeletePhoto removes a photo and its stored bytes
func (h *PhotosHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid photo ID", "photo_id", idStr, "error", err)
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete photo", "photo_id", idStr, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Photo deleted", "photo_id", idStr)
	w.WriteHeader(http.StatusNoContent)
}

// firstFileHeader returns the first file part of the parsed multipart form,
// or nil when the form carries no files.
func firstFileHeader(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	for _, headers := range r.MultipartForm.File {
		if len(headers) > 0 {
			return headers[0]
		}
	}
	return nil
}

// writeError maps service errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, photobook.ErrNoFile), errors.Is(err, photobook.ErrInvalidImage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, photobook.ErrPhotoNotFound), errors.Is(err, photobook.ErrBlobNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, photobook.ErrPhotoExists), errors.Is(err, photobook.ErrBlobExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
