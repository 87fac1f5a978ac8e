package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/fidghost/internal/prompts"
)

func TestGeneratePassthroughWithoutKey(t *testing.T) {
	s := NewGenerateService(&GenerateConfig{})
	assert.False(t, s.Enabled())

	out, err := s.Generate(context.Background(), "https://img/avatar.png", "42")
	require.NoError(t, err)
	assert.Equal(t, "https://img/avatar.png", out)

	_, err = s.Generate(context.Background(), "", "42")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestGeneratePollsUntilDone(t *testing.T) {
	var polls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer r8-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/models/owner/ghostify/predictions":
			assert.Equal(t, "wait", r.Header.Get("Prefer"))
			var req replicateRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://img/avatar.png", req.Input.Image)
			assert.Equal(t, prompts.GhostPrompt, req.Input.Prompt)
			assert.Equal(t, 1024, req.Input.Width)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "p1",
				"status": "starting",
				"urls":   map[string]string{"get": srv.URL + "/predictions/p1"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/predictions/p1":
			if polls.Add(1) < 2 {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"id":     "p1",
					"status": "processing",
					"urls":   map[string]string{"get": srv.URL + "/predictions/p1"},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "p1",
				"status": "succeeded",
				"output": []string{"https://out/ghost.png"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewGenerateService(&GenerateConfig{
		APIKey:       "r8-key",
		BaseURL:      srv.URL,
		Model:        "owner/ghostify",
		PollInterval: 10 * time.Millisecond,
	})

	out, err := s.Generate(context.Background(), "https://img/avatar.png", "42")
	require.NoError(t, err)
	assert.Equal(t, "https://out/ghost.png", out)
	assert.EqualValues(t, 2, polls.Load())
}

func TestGenerateFailedPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predictions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p2","status":"failed","error":"NSFW"}`))
	}))
	defer srv.Close()

	s := NewGenerateService(&GenerateConfig{APIKey: "k", BaseURL: srv.URL, Model: "owner/ghostify:abc123"})

	_, err := s.Generate(context.Background(), "https://img/avatar.png", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NSFW")
}

func TestFirstOutputURL(t *testing.T) {
	assert.Equal(t, "a", firstOutputURL("a"))
	assert.Equal(t, "b", firstOutputURL([]interface{}{"", "b"}))
	assert.Equal(t, "", firstOutputURL(nil))
}
