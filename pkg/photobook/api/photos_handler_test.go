package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photobook/photobook/pkg/photobook"
	memoryrepo "github.com/photobook/photobook/pkg/photobook/repo/memory"
	memorystorage "github.com/photobook/photobook/pkg/photobook/storage/memory"
)

type stubDescriber struct {
	caption *photobook.Caption
	err     error
}

func (d *stubDescriber) Describe(context.Context, io.ReadSeeker) (*photobook.Caption, error) {
	return d.caption, d.err
}

func newTestServer(t *testing.T, options ...photobook.Option) *httptest.Server {
	t.Helper()

	base := []photobook.Option{
		photobook.WithRepository(memoryrepo.New()),
		photobook.WithBlobStore(memorystorage.New()),
	}
	svc, err := photobook.New(append(base, options...)...)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/photos", NewPhotosHandler(svc).Routes())

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func multipartBody(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func uploadPhoto(t *testing.T, server *httptest.Server, fileName, contentType string, data []byte) *http.Response {
	t.Helper()

	body, formContentType := multipartBody(t, fileName, contentType, data)
	resp, err := http.Post(server.URL+"/photos", formContentType, body)
	require.NoError(t, err)
	return resp
}

func TestUploadPhoto(t *testing.T) {
	description := "a cat sitting on a red sofa"
	server := newTestServer(t, photobook.WithDescriber(&stubDescriber{
		caption: &photobook.Caption{Text: description, Confidence: 0.87},
	}))

	resp := uploadPhoto(t, server, "Cat.JPG", "image/jpeg", []byte("jpeg bytes"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created PhotoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	assert.Equal(t, "Cat.JPG", created.OriginalFileName)
	require.NotNil(t, created.Description)
	assert.Equal(t, description, *created.Description)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, id.String()+".jpg", created.StorageKey)
	assert.Equal(t, "/photos/"+created.ID, resp.Header.Get("Location"))
}

func TestUploadPhotoRejectsNonImage(t *testing.T) {
	server := newTestServer(t)

	resp := uploadPhoto(t, server, "notes.txt", "text/plain", []byte("plain text"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	listResp, err := http.Get(server.URL + "/photos")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var photos []PhotoResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&photos))
	assert.Empty(t, photos)
}

func TestUploadPhotoWithoutFile(t *testing.T) {
	server := newTestServer(t)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	resp, err := http.Post(server.URL+"/photos", writer.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownloadPhoto(t *testing.T) {
	server := newTestServer(t)

	payload := []byte("png payload")
	createResp := uploadPhoto(t, server, "shot.png", "image/png", payload)
	var created PhotoResponse
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	createResp.Body.Close()

	resp, err := http.Get(server.URL + "/photos/" + created.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadPhotoNotFound(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/photos/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadPhotoInvalidID(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/photos/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPhotosOrderedByFileName(t *testing.T) {
	server := newTestServer(t)

	for _, fileName := range []string{"b.jpg", "a.png", "c.gif"} {
		resp := uploadPhoto(t, server, fileName, photobook.MimeTypeByExtension(fileName), []byte(fileName))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(server.URL + "/photos")
	require.NoError(t, err)
	defer resp.Body.Close()

	var photos []PhotoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&photos))

	require.Len(t, photos, 3)
	assert.Equal(t, "a.png", photos[0].OriginalFileName)
	assert.Equal(t, "b.jpg", photos[1].OriginalFileName)
	assert.Equal(t, "c.gif", photos[2].OriginalFileName)
}

func TestDeletePhoto(t *testing.T) {
	server := newTestServer(t)

	createResp := uploadPhoto(t, server, "gone.gif", "image/gif", []byte("gif bytes"))
	var created PhotoResponse
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	createResp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/photos/"+created.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(server.URL + "/photos/" + created.ID)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// A second delete reports the record as already gone
	resp, err = http.DefaultClient.Do(req.Clone(req.Context()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
