package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/service"
)

// MintParamsBuilder prepares mint calls.
type MintParamsBuilder interface {
	Params(fid, metadataURI string) (*service.MintParams, error)
}

// MintHandler hands wallets the data for a mint transaction.
type MintHandler struct {
	mint MintParamsBuilder
}

// NewMintHandler creates a new mint handler.
func NewMintHandler(mint MintParamsBuilder) *MintHandler {
	return &MintHandler{mint: mint}
}

// Params handles GET /api/v1/mint/params?fid=<fid>&metadataUrl=<uri>.
func (h *MintHandler) Params(c *gin.Context) {
	params, err := h.mint.Params(c.Query("fid"), c.Query("metadataUrl"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}
