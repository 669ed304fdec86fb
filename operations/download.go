package operations

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"
	"time"
)

const downloadTimeout = 10 * time.Second

// DownloadImage fetches url and writes the body to savePath when the server
// reports an image content type. It never returns an error; the flag and
// message describe the outcome.
func DownloadImage(ctx context.Context, url, savePath string) (bool, string) {
	ok, msg, _ := FetchImage(ctx, url, savePath)
	return ok, msg
}

// FetchImage is DownloadImage that also returns the media type the server
// reported, lower case and without parameters.
func FetchImage(ctx context.Context, url, savePath string) (bool, string, string) {
	client := &http.Client{Timeout: downloadTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Sprintf("Error downloading image: %v", err), ""
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Sprintf("Error downloading image: %v", err), ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Sprintf("Error downloading image: unexpected status %s", resp.Status), ""
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "image/") {
		return false, fmt.Sprintf("URL does not point to an image (content-type: %s).", contentType), ""
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Sprintf("Error downloading image: %v", err), ""
	}
	if err := os.WriteFile(savePath, data, 0o600); err != nil {
		return false, fmt.Sprintf("Error downloading image: %v", err), ""
	}

	mediaType := contentType
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = mt
	}
	return true, fmt.Sprintf("Image downloaded to: %s", savePath), mediaType
}

// imageExtensions maps served media types onto the upload extensions the
// tracer decodes. The tracer picks its decoder from the file extension.
var imageExtensions = map[string]string{
	"image/png":      ".png",
	"image/jpeg":     ".jpg",
	"image/jpg":      ".jpg",
	"image/pjpeg":    ".jpg",
	"image/gif":      ".gif",
	"image/bmp":      ".bmp",
	"image/x-bmp":    ".bmp",
	"image/x-ms-bmp": ".bmp",
}

// ImageExtension returns the file extension for an image media type, or ""
// when the type is not one the converter accepts.
func ImageExtension(mediaType string) string {
	return imageExtensions[strings.ToLower(strings.TrimSpace(mediaType))]
}
