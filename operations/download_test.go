package operations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadImage(t *testing.T) {
	pngBytes := []byte("\x89PNG\r\n\x1a\nfake")

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantOK      bool
		wantMessage string
	}{
		{
			name: "image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				w.Write(pngBytes)
			},
			wantOK:      true,
			wantMessage: "Image downloaded to:",
		},
		{
			name: "upper case content type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "IMAGE/JPEG")
				w.Write(pngBytes)
			},
			wantOK:      true,
			wantMessage: "Image downloaded to:",
		},
		{
			name: "html page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write([]byte("<html></html>"))
			},
			wantOK:      false,
			wantMessage: "URL does not point to an image (content-type: text/html; charset=utf-8).",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantOK:      false,
			wantMessage: "Error downloading image: unexpected status 404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			path := filepath.Join(t.TempDir(), "download.png")
			ok, msg := DownloadImage(context.Background(), srv.URL, path)

			assert.Equal(t, tt.wantOK, ok)
			assert.Contains(t, msg, tt.wantMessage)

			data, err := os.ReadFile(path)
			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, pngBytes, data)
			} else {
				assert.True(t, os.IsNotExist(err))
			}
		})
	}
}

func TestDownloadImage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ok, msg := DownloadImage(context.Background(), url, filepath.Join(t.TempDir(), "x.png"))
	assert.False(t, ok)
	assert.Contains(t, msg, "Error downloading image:")
}

func TestDownloadImage_BadURL(t *testing.T) {
	ok, msg := DownloadImage(context.Background(), "://nope", filepath.Join(t.TempDir(), "x.png"))
	assert.False(t, ok)
	assert.Contains(t, msg, "Error downloading image:")
}

func TestFetchImage_MediaType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "Image/PNG; charset=binary")
		w.Write([]byte("png"))
	}))
	defer srv.Close()

	ok, _, mediaType := FetchImage(context.Background(), srv.URL+"/dl?id=1", filepath.Join(t.TempDir(), "dl"))
	require.True(t, ok)
	assert.Equal(t, "image/png", mediaType)
}

func TestImageExtension(t *testing.T) {
	tests := []struct {
		mediaType string
		want      string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/pjpeg", ".jpg"},
		{"image/gif", ".gif"},
		{"image/bmp", ".bmp"},
		{"image/x-ms-bmp", ".bmp"},
		{" IMAGE/PNG ", ".png"},
		{"image/webp", ""},
		{"image/svg+xml", ""},
		{"text/html", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageExtension(tt.mediaType))
		})
	}
}
