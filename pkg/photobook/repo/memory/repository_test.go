package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photobook/photobook/pkg/photobook"
)

func newPhoto(fileName string) *photobook.Photo {
	id := uuid.New()
	return &photobook.Photo{
		ID:               id,
		OriginalFileName: fileName,
		StorageKey:       photobook.StorageKey(id, fileName),
		UploadedAt:       time.Now().UTC(),
	}
}

func TestInsertAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := New()

	photo := newPhoto("cat.jpg")
	require.NoError(t, repo.Insert(ctx, photo))

	got, err := repo.FindByID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.ID, got.ID)
	assert.Equal(t, "cat.jpg", got.OriginalFileName)
}

func TestInsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := New()

	photo := newPhoto("cat.jpg")
	require.NoError(t, repo.Insert(ctx, photo))

	err := repo.Insert(ctx, photo)
	assert.ErrorIs(t, err, photobook.ErrPhotoExists)
}

func TestFindByIDReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := New()

	photo := newPhoto("cat.jpg")
	require.NoError(t, repo.Insert(ctx, photo))

	got, err := repo.FindByID(ctx, photo.ID)
	require.NoError(t, err)

	// Mutating the returned record must not touch the stored one
	got.OriginalFileName = "mutated.jpg"

	again, err := repo.FindByID(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat.jpg", again.OriginalFileName)
}

func TestFindByIDMissing(t *testing.T) {
	repo := New()

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, photobook.ErrPhotoNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := New()

	photo := newPhoto("cat.jpg")
	require.NoError(t, repo.Insert(ctx, photo))

	require.NoError(t, repo.Delete(ctx, photo.ID))

	_, err := repo.FindByID(ctx, photo.ID)
	assert.ErrorIs(t, err, photobook.ErrPhotoNotFound)

	err = repo.Delete(ctx, photo.ID)
	assert.ErrorIs(t, err, photobook.ErrPhotoNotFound)
}

func TestListAllOrdersByFileName(t *testing.T) {
	ctx := context.Background()
	repo := New()

	for _, fileName := range []string{"c.gif", "a.png", "b.jpg"} {
		require.NoError(t, repo.Insert(ctx, newPhoto(fileName)))
	}

	photos, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	assert.Equal(t, "a.png", photos[0].OriginalFileName)
	assert.Equal(t, "b.jpg", photos[1].OriginalFileName)
	assert.Equal(t, "c.gif", photos[2].OriginalFileName)
}

func TestListAllEmpty(t *testing.T) {
	repo := New()

	photos, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestListAllTiesBrokenByID(t *testing.T) {
	ctx := context.Background()
	repo := New()

	first := newPhoto("same.jpg")
	second := newPhoto("same.jpg")
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	photos, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	assert.Less(t, photos[0].ID.String(), photos[1].ID.String())
}
