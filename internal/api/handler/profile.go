package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/service"
)

// ProfileLookup resolves a Farcaster profile.
type ProfileLookup interface {
	Lookup(ctx context.Context, fid string) (*service.Profile, error)
}

// ProfileHandler handles Farcaster profile lookups.
type ProfileHandler struct {
	profiles ProfileLookup
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles ProfileLookup) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Profile handles GET /api/v1/farcaster-profile?q=<fid>.
func (h *ProfileHandler) Profile(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		q = c.Query("fid")
	}

	profile, err := h.profiles.Lookup(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
