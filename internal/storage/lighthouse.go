package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultLighthouseEndpoint = "https://upload.lighthouse.storage"

// LighthouseUploader pins files through the Lighthouse HTTP API.
type LighthouseUploader struct {
	client   *resty.Client
	endpoint string
}

// LighthouseConfig holds configuration for the Lighthouse uploader.
type LighthouseConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// NewLighthouseUploader creates a new Lighthouse uploader.
// Parameters:
//   - cfg: API key, node endpoint and request timeout.
//
// Returns:
//   - *LighthouseUploader: initialized uploader.
func NewLighthouseUploader(cfg *LighthouseConfig) *LighthouseUploader {
	client := resty.New()
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	client.SetTimeout(timeout)

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultLighthouseEndpoint
	}

	return &LighthouseUploader{
		client:   client,
		endpoint: endpoint + "/api/v0/add",
	}
}

// Upload sends localPath as a multipart file and returns the decoded response.
func (u *LighthouseUploader) Upload(ctx context.Context, localPath string) (map[string]interface{}, error) {
	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("failed to stat upload file: %w", err)
	}

	httpResp, err := u.client.R().
		SetContext(ctx).
		SetFile("file", localPath).
		Post(u.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call Lighthouse API: %w", err)
	}

	if !httpResp.IsSuccess() {
		return nil, fmt.Errorf("Lighthouse API returned error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(httpResp.Body(), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode Lighthouse response: %w", err)
	}

	return resp, nil
}
