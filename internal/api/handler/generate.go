package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/domain"
)

// Generator turns an avatar into a ghost image URL.
type Generator interface {
	Generate(ctx context.Context, avatarURL, fid string) (string, error)
}

// GenerateHandler handles ghost image generation.
type GenerateHandler struct {
	generator Generator
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(generator Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	AvatarURL string     `json:"avatarUrl"`
	FID       domain.FID `json:"fid"`
}

// Generate handles POST /api/v1/generate.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing avatarUrl",
		})
		return
	}

	imageURL, err := h.generator.Generate(c.Request.Context(), req.AvatarURL, req.FID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imageUrl": imageURL,
	})
}
