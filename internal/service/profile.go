package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/fidghost/internal/logger"
)

const defaultAvatarBaseURL = "https://api.dicebear.com/8.x/pixel-art/png"

// Profile is the identity shown before a ghost is generated.
type Profile struct {
	FID         string `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName"`
	PfpURL      string `json:"pfp_url"`
}

// ProfileService resolves a Farcaster id to a display name and avatar.
type ProfileService struct {
	client        *resty.Client
	apiKey        string
	endpoint      string
	avatarBaseURL string
}

// ProfileConfig holds configuration for the profile service.
type ProfileConfig struct {
	NeynarAPIKey  string
	NeynarBaseURL string
	AvatarBaseURL string
}

// NewProfileService creates a new profile service.
func NewProfileService(cfg *ProfileConfig) *ProfileService {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(10 * time.Second)
	if cfg.NeynarAPIKey != "" {
		client.SetHeader("x-api-key", cfg.NeynarAPIKey)
	}

	baseURL := strings.TrimSuffix(cfg.NeynarBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.neynar.com"
	}
	avatarBaseURL := cfg.AvatarBaseURL
	if avatarBaseURL == "" {
		avatarBaseURL = defaultAvatarBaseURL
	}

	return &ProfileService{
		client:        client,
		apiKey:        cfg.NeynarAPIKey,
		endpoint:      baseURL + "/v2/farcaster/user/bulk",
		avatarBaseURL: avatarBaseURL,
	}
}

type neynarBulkResponse struct {
	Users []struct {
		FID         int64  `json:"fid"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		PfpURL      string `json:"pfp_url"`
	} `json:"users"`
}

// Lookup returns the profile for fid. Without an API key, for non-numeric ids,
// or when the hub cannot answer, it returns a generated placeholder.
func (s *ProfileService) Lookup(ctx context.Context, fid string) (*Profile, error) {
	fid = strings.TrimSpace(fid)
	if fid == "" {
		return nil, invalidArgument("missing q")
	}

	placeholder := s.placeholder(fid)
	if s.apiKey == "" {
		return placeholder, nil
	}
	if _, err := strconv.ParseUint(fid, 10, 64); err != nil {
		return placeholder, nil
	}

	profile, err := s.fetchHub(ctx, fid)
	if err != nil {
		logger.CtxWarn(ctx, "Farcaster lookup failed, using placeholder: %v", err)
		return placeholder, nil
	}
	if profile == nil {
		return placeholder, nil
	}
	if profile.DisplayName == "" {
		profile.DisplayName = placeholder.DisplayName
	}
	if profile.PfpURL == "" {
		profile.PfpURL = placeholder.PfpURL
	}
	return profile, nil
}

func (s *ProfileService) fetchHub(ctx context.Context, fid string) (*Profile, error) {
	var resp neynarBulkResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("fids", fid).
		SetResult(&resp).
		Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to call Neynar API: %w", err)
	}
	if !httpResp.IsSuccess() {
		return nil, fmt.Errorf("Neynar API returned error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}
	if len(resp.Users) == 0 {
		return nil, nil
	}

	u := resp.Users[0]
	return &Profile{
		FID:         fid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		PfpURL:      u.PfpURL,
	}, nil
}

func (s *ProfileService) placeholder(fid string) *Profile {
	return &Profile{
		FID:         fid,
		DisplayName: "farcaster-" + fid,
		PfpURL:      s.avatarBaseURL + "?seed=" + url.QueryEscape("farcaster-"+fid),
	}
}
