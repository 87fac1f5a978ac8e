package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/fidghost/internal/app"
	"github.com/timmy/fidghost/internal/config"
	"github.com/timmy/fidghost/internal/domain"
	"github.com/timmy/fidghost/internal/logger"
	"github.com/timmy/fidghost/internal/service"
)

func main() {
	// Logs go to stderr so stdout carries only the result
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "fidghost-pin",
		Environment: "local",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	fid := flag.String("fid", "", "Farcaster id of the ghost")
	imageURL := flag.String("image", "", "Source image URL; defaults to the profile avatar")
	displayName := flag.String("name", "", "Display name recorded with the pin")
	rarity := flag.String("rarity", "", "Force a rarity instead of rolling one")
	mood := flag.String("mood", "", "Force a mood instead of drawing one")
	generate := flag.Bool("generate", false, "Run the image through the ghost generator before pinning")
	flag.Parse()

	if *fid == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	services, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize services: %v", err)
	}
	defer services.Close()

	ctx = logger.SetComponent(appLogger.WithContext(ctx), "cli")
	ctx = logger.SetFID(ctx, *fid)

	if *imageURL == "" || *displayName == "" {
		profile, err := services.Profile.Lookup(ctx, *fid)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to look up profile")
		}
		if *imageURL == "" {
			*imageURL = profile.PfpURL
		}
		if *displayName == "" {
			*displayName = profile.DisplayName
		}
	}

	if *generate {
		out, err := services.Generate.Generate(ctx, *imageURL, *fid)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to generate ghost image")
		}
		*imageURL = out
	}

	asset, err := services.Pin.Pin(ctx, &service.PinRequest{
		ImageURL:    *imageURL,
		FID:         domain.FID(*fid),
		DisplayName: *displayName,
		Rarity:      *rarity,
		Mood:        *mood,
	})
	if err != nil {
		appLogger.WithError(err).Error("Pin failed")
		cancel()
		services.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(asset); err != nil {
		appLogger.WithError(err).Fatal("Failed to write result")
	}
}
