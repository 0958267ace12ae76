package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photobook/photobook/pkg/photobook"
)

func TestSaveAndOpen(t *testing.T) {
	ctx := context.Background()
	backend := New()

	payload := []byte("image bytes")
	require.NoError(t, backend.Save(ctx, "abc.jpg", bytes.NewReader(payload), false))

	body, err := backend.Open(ctx, "abc.jpg")
	require.NoError(t, err)
	defer body.Close()

	got, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSaveRejectsOverwrite(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Save(ctx, "abc.jpg", bytes.NewReader([]byte("first")), false))

	err := backend.Save(ctx, "abc.jpg", bytes.NewReader([]byte("second")), false)
	assert.ErrorIs(t, err, photobook.ErrBlobExists)

	// The original bytes are untouched
	body, err := backend.Open(ctx, "abc.jpg")
	require.NoError(t, err)
	got, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, []byte("first"), got)
}

func TestSaveOverwriteAllowed(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Save(ctx, "abc.jpg", bytes.NewReader([]byte("first")), false))
	require.NoError(t, backend.Save(ctx, "abc.jpg", bytes.NewReader([]byte("second")), true))

	body, err := backend.Open(ctx, "abc.jpg")
	require.NoError(t, err)
	got, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, []byte("second"), got)
}

func TestSaveRewindsReader(t *testing.T) {
	ctx := context.Background()
	backend := New()

	reader := bytes.NewReader([]byte("payload"))
	reader.Seek(3, io.SeekStart)

	require.NoError(t, backend.Save(ctx, "abc.jpg", reader, false))

	body, err := backend.Open(ctx, "abc.jpg")
	require.NoError(t, err)
	got, _ := io.ReadAll(body)
	body.Close()
	assert.Equal(t, []byte("payload"), got)
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Save(ctx, "ABC.JPG", bytes.NewReader([]byte("x")), false))

	exists, err := backend.Exists(ctx, "abc.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = backend.Open(ctx, "abc.jpg")
	assert.NoError(t, err)
}

func TestOpenMissing(t *testing.T) {
	backend := New()

	_, err := backend.Open(context.Background(), "missing.jpg")
	assert.ErrorIs(t, err, photobook.ErrBlobNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := New()

	require.NoError(t, backend.Save(ctx, "abc.jpg", bytes.NewReader([]byte("x")), false))

	require.NoError(t, backend.Delete(ctx, "abc.jpg"))
	require.NoError(t, backend.Delete(ctx, "abc.jpg"))

	exists, err := backend.Exists(ctx, "abc.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestContentTypeRecorded(t *testing.T) {
	ctx := context.Background()
	backend := New().(*Backend)

	require.NoError(t, backend.Save(ctx, "abc.png", bytes.NewReader([]byte("x")), false))
	assert.Equal(t, "image/png", backend.ContentType("abc.png"))
}
