package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/api/middleware"
	"github.com/timmy/fidghost/internal/domain"
	"github.com/timmy/fidghost/internal/service"
)

// Pinner runs the pinning pipeline.
type Pinner interface {
	Pin(ctx context.Context, req *service.PinRequest) (*domain.PinnedAsset, error)
}

// UploadHandler handles the pin endpoint.
type UploadHandler struct {
	pinner Pinner
}

// NewUploadHandler creates a new upload handler.
// Parameters:
//   - pinner: pin pipeline.
// Returns:
//   - *UploadHandler: initialized handler.
func NewUploadHandler(pinner Pinner) *UploadHandler {
	return &UploadHandler{pinner: pinner}
}

// UploadResponse is the body of a successful pin.
type UploadResponse struct {
	MetadataURL     string `json:"metadataUrl"`
	MetadataGateway string `json:"metadataGateway"`
	ImageIPFS       string `json:"imageIpfs"`
	ImageGateway    string `json:"imageGateway"`
}

// Upload handles POST /api/v1/upload.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UploadHandler) Upload(c *gin.Context) {
	var req service.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLogger(c).WithError(err).Debug("Rejected upload body")
		if errors.Is(err, service.ErrInvalidArgument) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing imageUrl or fid",
		})
		return
	}

	asset, err := h.pinner.Pin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		MetadataURL:     asset.MetadataURI,
		MetadataGateway: asset.MetadataGatewayURL,
		ImageIPFS:       asset.ImageURI,
		ImageGateway:    asset.ImageGatewayURL,
	})
}
