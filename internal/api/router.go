package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/fidghost/internal/api/handler"
	"github.com/timmy/fidghost/internal/api/middleware"
	"github.com/timmy/fidghost/internal/config"
	"github.com/timmy/fidghost/internal/logger"
)

// Handlers groups the endpoint handlers mounted by SetupRouter. Pins is nil
// when the ledger is disabled.
type Handlers struct {
	Health   *handler.HealthHandler
	Upload   *handler.UploadHandler
	Generate *handler.GenerateHandler
	Profile  *handler.ProfileHandler
	Pins     *handler.PinsHandler
	Mint     *handler.MintHandler
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(h *Handlers, cfg *config.ServerConfig, log *logger.Logger) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", h.Health.Health)

	// Path the web client has always posted to
	r.POST("/api/upload", h.Upload.Upload)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/upload", h.Upload.Upload)
		v1.POST("/generate", h.Generate.Generate)
		v1.GET("/farcaster-profile", h.Profile.Profile)
		v1.GET("/mint/params", h.Mint.Params)

		if h.Pins != nil {
			v1.GET("/pins", h.Pins.ListPins)
		}
	}

	return r
}
