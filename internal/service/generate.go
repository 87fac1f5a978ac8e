package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/fidghost/internal/logger"
	"github.com/timmy/fidghost/internal/prompts"
)

// GenerateService turns an avatar into a ghost image through Replicate.
type GenerateService struct {
	client       *resty.Client
	apiKey       string
	baseURL      string
	model        string
	version      string
	prompt       string
	timeout      time.Duration
	pollInterval time.Duration
}

// GenerateConfig holds configuration for the generate service.
type GenerateConfig struct {
	APIKey       string
	BaseURL      string
	Model        string // owner/name, optionally :version
	Prompt       string
	Timeout      time.Duration
	PollInterval time.Duration
}

// NewGenerateService creates a new generate service.
// Parameters:
//   - cfg: Replicate credentials, model and timeouts.
//
// Returns:
//   - *GenerateService: initialized client wrapper.
func NewGenerateService(cfg *GenerateConfig) *GenerateService {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.replicate.com/v1"
	}

	model, version := cfg.Model, ""
	if idx := strings.Index(model, ":"); idx != -1 {
		model, version = model[:idx], model[idx+1:]
	}
	if version == "latest" {
		version = ""
	}

	prompt := cfg.Prompt
	if prompt == "" {
		prompt = prompts.GhostPrompt
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	client.SetTimeout(timeout)

	return &GenerateService{
		client:       client,
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		model:        model,
		version:      version,
		prompt:       prompt,
		timeout:      timeout,
		pollInterval: pollInterval,
	}
}

// Enabled reports whether a Replicate key is configured.
func (s *GenerateService) Enabled() bool {
	return s.apiKey != ""
}

type replicateRequest struct {
	Version string         `json:"version,omitempty"`
	Input   replicateInput `json:"input"`
}

type replicateInput struct {
	Image  string `json:"image"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type replicatePrediction struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Output interface{} `json:"output"`
	Error  interface{} `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

// Generate returns the URL of a ghost rendition of avatarURL. With no API key
// configured the avatar URL is returned unchanged.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - avatarURL: source avatar image.
//   - fid: requesting Farcaster id, used for logging.
//
// Returns:
//   - string: generated image URL.
//   - error: non-nil if the prediction fails or times out.
func (s *GenerateService) Generate(ctx context.Context, avatarURL, fid string) (string, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return "", invalidArgument("missing avatarUrl")
	}
	if !s.Enabled() {
		return avatarURL, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := replicateRequest{
		Version: s.version,
		Input: replicateInput{
			Image:  avatarURL,
			Prompt: s.prompt,
			Width:  prompts.GhostImageSize,
			Height: prompts.GhostImageSize,
		},
	}

	endpoint := s.baseURL + "/predictions"
	if s.version == "" {
		endpoint = fmt.Sprintf("%s/models/%s/predictions", s.baseURL, s.model)
	}

	var pred replicatePrediction
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "wait").
		SetBody(req).
		SetResult(&pred).
		Post(endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call Replicate API: %w", err)
	}
	if !httpResp.IsSuccess() {
		return "", fmt.Errorf("Replicate API returned error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		"prediction_id": pred.ID,
		logger.FieldFID: fid,
	}).Debug("Prediction created")

	for !isTerminal(pred.Status) {
		if pred.URLs.Get == "" {
			return "", fmt.Errorf("prediction %s is %s but has no poll URL", pred.ID, pred.Status)
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("prediction %s did not finish: %w", pred.ID, ctx.Err())
		case <-time.After(s.pollInterval):
		}

		next := replicatePrediction{}
		httpResp, err = s.client.R().SetContext(ctx).SetResult(&next).Get(pred.URLs.Get)
		if err != nil {
			return "", fmt.Errorf("failed to poll prediction %s: %w", pred.ID, err)
		}
		if !httpResp.IsSuccess() {
			return "", fmt.Errorf("Replicate API returned error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		pred = next
	}

	if pred.Status != "succeeded" {
		return "", fmt.Errorf("prediction %s %s: %v", pred.ID, pred.Status, pred.Error)
	}

	out := firstOutputURL(pred.Output)
	if out == "" {
		return "", fmt.Errorf("prediction %s returned no output", pred.ID)
	}
	logger.CtxInfo(ctx, "Ghost generated: prediction=%s", pred.ID)
	return out, nil
}

func isTerminal(status string) bool {
	switch status {
	case "succeeded", "failed", "canceled":
		return true
	default:
		return false
	}
}

// firstOutputURL accepts either a single URL or a list of URLs.
func firstOutputURL(output interface{}) string {
	switch v := output.(type) {
	case string:
		return v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
