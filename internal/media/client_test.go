package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadSendsMultipartForm(t *testing.T) {
	var (
		gotUser   string
		gotFields map[string]string
		gotFile   string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{
			"fileName":          r.FormValue("fileName"),
			"useUniqueFileName": r.FormValue("useUniqueFileName"),
			"tags":              r.FormValue("tags"),
		}

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, err := io.ReadAll(f)
		require.NoError(t, err)
		gotFile = string(b)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://ik.example/photo_x1.png","name":"photo_x1.png","fileId":"abc123"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "private-key", "feed")

	res, err := c.Upload(context.Background(), strings.NewReader("png-bytes"), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, "private-key", gotUser)
	assert.Equal(t, "photo.png", gotFields["fileName"])
	assert.Equal(t, "true", gotFields["useUniqueFileName"])
	assert.Equal(t, "feed", gotFields["tags"])
	assert.Equal(t, "png-bytes", gotFile)

	assert.Equal(t, "https://ik.example/photo_x1.png", res.URL)
	assert.Equal(t, "photo_x1.png", res.Name)
	assert.Equal(t, "abc123", res.FileID)
}

func TestUploadNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", "feed")

	_, err := c.Upload(context.Background(), strings.NewReader("x"), "photo.png")
	require.Error(t, err)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusForbidden, ue.Status)
	assert.Contains(t, ue.Body, "invalid key")
}

func TestUploadUnreachableHost(t *testing.T) {
	c := New("http://127.0.0.1:1", "key", "feed")

	_, err := c.Upload(context.Background(), strings.NewReader("x"), "photo.png")
	require.Error(t, err)

	var ue *UploadError
	assert.False(t, errors.As(err, &ue), "transport errors are not UploadErrors")
}
