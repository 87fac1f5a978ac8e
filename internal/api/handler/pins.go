package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/domain"
	"github.com/timmy/fidghost/internal/service"
)

// PinLister reads the pin ledger.
type PinLister interface {
	ListByFID(ctx context.Context, fid string, limit int) ([]domain.PinRecord, error)
}

// PinsHandler serves previously pinned ghosts.
type PinsHandler struct {
	pins        PinLister
	gatewayHost string
}

// NewPinsHandler creates a new pins handler. Gateway links in the response are
// built against gatewayHost without probing.
func NewPinsHandler(pins PinLister, gatewayHost string) *PinsHandler {
	return &PinsHandler{pins: pins, gatewayHost: gatewayHost}
}

// PinItem is one ledger entry as returned to clients.
type PinItem struct {
	domain.PinRecord
	ImageGateway    string `json:"imageGateway"`
	MetadataGateway string `json:"metadataGateway"`
}

// ListPins handles GET /api/v1/pins?fid=<fid>&limit=<n>.
func (h *PinsHandler) ListPins(c *gin.Context) {
	fid := strings.TrimSpace(c.Query("fid"))
	if fid == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing fid",
		})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	pins, err := h.pins.ListByFID(c.Request.Context(), fid, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]PinItem, 0, len(pins))
	for _, p := range pins {
		items = append(items, PinItem{
			PinRecord:       p,
			ImageGateway:    service.GatewayURL(h.gatewayHost, p.ImageCID, fileOf(p.ImageURI)),
			MetadataGateway: service.GatewayURL(h.gatewayHost, p.MetadataCID, fileOf(p.MetadataURI)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"fid":   fid,
		"pins":  items,
		"total": len(items),
	})
}

func fileOf(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx != -1 {
		return uri[idx+1:]
	}
	return uri
}
