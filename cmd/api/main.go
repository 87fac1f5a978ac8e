package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/fidghost/internal/api"
	"github.com/timmy/fidghost/internal/api/handler"
	"github.com/timmy/fidghost/internal/app"
	"github.com/timmy/fidghost/internal/config"
	"github.com/timmy/fidghost/internal/logger"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	if cfg.Lighthouse.APIKey == "" {
		logger.Warn("LIGHTHOUSE_API_KEY not set, uploads will be rejected")
	}

	ctx := context.Background()
	services, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize services: %v", err)
	}
	defer services.Close()

	handlers := &api.Handlers{
		Health:   handler.NewHealthHandler(services.Generate.Enabled(), services.Pins != nil),
		Upload:   handler.NewUploadHandler(services.Pin),
		Generate: handler.NewGenerateHandler(services.Generate),
		Profile:  handler.NewProfileHandler(services.Profile),
		Mint:     handler.NewMintHandler(services.Mint),
	}
	if services.Pins != nil {
		handlers.Pins = handler.NewPinsHandler(services.Pins, cfg.Gateway.PrivateHost)
	}

	router := api.SetupRouter(handlers, &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// In-flight pins get the full probe window to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Gateway.ProbeTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
