package photobook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	describer  Describer
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithDescriber sets the content analysis client. It is optional: without
// one every uploaded photo simply has no description.
func WithDescriber(d Describer) Option {
	return func(s *service) {
		s.describer = d
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*Photo, error) {
	if req.Data == nil {
		return nil, ErrNoFile
	}
	if !IsImage(req.FileName, req.ContentType) {
		return nil, ErrInvalidImage
	}

	// Both the analyzer and the blob write need a seekable stream, so the
	// upload is buffered once here.
	data, err := io.ReadAll(req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	id := uuid.New()
	key := StorageKey(id, req.FileName)

	description := s.describe(ctx, id, bytes.NewReader(data))

	if err := s.blobStore.Save(ctx, key, bytes.NewReader(data), false); err != nil {
		return nil, &StorageError{Key: key, Op: "save", Err: err}
	}

	photo := &Photo{
		ID:               id,
		OriginalFileName: req.FileName,
		StorageKey:       key,
		Description:      description,
		UploadedAt:       time.Now().UTC(),
	}

	if err := s.repository.Insert(ctx, photo); err != nil {
		// The blob was written but the record will never exist. Reclaim the
		// blob so the stores stay in lockstep; a leaked blob has no record
		// pointing at it and would be undiscoverable.
		if delErr := s.blobStore.Delete(ctx, key); delErr != nil {
			slog.Error("failed to reclaim blob after insert failure",
				"photo_id", id, "storage_key", key, "error", delErr)
		}
		return nil, &PhotoError{PhotoID: id, Op: "insert", Err: err}
	}

	return photo, nil
}

// describe runs the best-effort captioning call. Analysis is an enhancement,
// not a correctness requirement: any failure or empty result degrades to a
// photo without a description.
func (s *service) describe(ctx context.Context, id uuid.UUID, image io.ReadSeeker) *string {
	if s.describer == nil {
		return nil
	}

	caption, err := s.describer.Describe(ctx, image)
	if err != nil {
		slog.Warn("content analysis failed, continuing without description",
			"photo_id", id, "error", err)
		return nil
	}
	if caption == nil || caption.Text == "" {
		return nil
	}
	return &caption.Text
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Photo, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id uuid.UUID) (*DownloadResult, error) {
	photo, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := s.blobStore.Open(ctx, photo.StorageKey)
	if err != nil {
		// A record without its blob is store divergence; surface it, never
		// mask it with empty content.
		slog.Error("photo record exists but blob is missing",
			"photo_id", id, "storage_key", photo.StorageKey, "error", err)
		return nil, &StorageError{Key: photo.StorageKey, Op: "open", Err: err}
	}

	return &DownloadResult{
		Photo:       photo,
		Body:        body,
		ContentType: MimeTypeByExtension(photo.OriginalFileName),
	}, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Blob first: failing between the two steps leaves a record pointing at
	// a gone blob, which a later fetch detects. The opposite order could
	// leak an orphan blob no record references.
	if err := s.blobStore.Delete(ctx, photo.StorageKey); err != nil {
		return &StorageError{Key: photo.StorageKey, Op: "delete", Err: err}
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return &PhotoError{PhotoID: id, Op: "delete", Err: err}
	}

	return nil
}

func (s *service) List(ctx context.Context) ([]*Photo, error) {
	return s.repository.ListAll(ctx)
}
