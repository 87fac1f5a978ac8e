package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/logger"
	"github.com/timmy/fidghost/internal/service"
)

// respondError writes {error} with 400 for caller mistakes and 500 otherwise.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	logger.CtxError(c.Request.Context(), "Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
