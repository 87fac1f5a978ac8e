package service

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp"
)

// ImageFetcher downloads a source image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPImageFetcher downloads images with a bounded timeout.
type HTTPImageFetcher struct {
	client *resty.Client
}

// DefaultMaxImageBytes caps a source image body.
const DefaultMaxImageBytes = 20 << 20

// NewHTTPImageFetcher creates a fetcher. A non-positive timeout uses 30s and a
// non-positive maxBytes uses DefaultMaxImageBytes; larger bodies are refused
// with resty.ErrResponseBodyTooLarge.
func NewHTTPImageFetcher(timeout time.Duration, maxBytes int) *HTTPImageFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetResponseBodyLimit(maxBytes)

	return &HTTPImageFetcher{client: client}
}

// Fetch returns the body of url. Non-2xx answers and transport failures are
// reported as *UpstreamFetchError.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &UpstreamFetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &UpstreamFetchError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// detectImageFormat sniffs the file extension and content type of an image.
// Anything undecodable is treated as png.
func detectImageFormat(data []byte) (ext, contentType string) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "png", "image/png"
	}

	switch format {
	case "jpeg":
		return "jpg", "image/jpeg"
	case "gif":
		return "gif", "image/gif"
	case "webp":
		return "webp", "image/webp"
	default:
		return "png", "image/png"
	}
}
