package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/photobook/photobook/pkg/photobook"
)

// Repository implements photobook.Repository using in-memory storage
type Repository struct {
	mu     sync.RWMutex
	photos map[uuid.UUID]*photobook.Photo
}

// New creates a new in-memory repository
func New() photobook.Repository {
	return &Repository{
		photos: make(map[uuid.UUID]*photobook.Photo),
	}
}

func (r *Repository) Insert(ctx context.Context, photo *photobook.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.photos[photo.ID]; exists {
		return photobook.ErrPhotoExists
	}

	// Store a copy to avoid external modifications
	photoCopy := *photo
	r.photos[photo.ID] = &photoCopy

	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*photobook.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photo, exists := r.photos[id]
	if !exists {
		return nil, photobook.ErrPhotoNotFound
	}

	photoCopy := *photo
	return &photoCopy, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.photos[id]; !exists {
		return photobook.ErrPhotoNotFound
	}

	delete(r.photos, id)
	return nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*photobook.Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	photos := make([]*photobook.Photo, 0, len(r.photos))
	for _, photo := range r.photos {
		photoCopy := *photo
		photos = append(photos, &photoCopy)
	}

	// Byte-wise ascending on the original name, id as the tie breaker so the
	// order is stable across calls.
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].OriginalFileName != photos[j].OriginalFileName {
			return photos[i].OriginalFileName < photos[j].OriginalFileName
		}
		return photos[i].ID.String() < photos[j].ID.String()
	})

	return photos, nil
}
