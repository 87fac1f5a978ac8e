// Package app wires configuration into the services shared by the API server
// and the pin CLI.
package app

import (
	"context"
	"fmt"

	"github.com/timmy/fidghost/internal/config"
	"github.com/timmy/fidghost/internal/logger"
	"github.com/timmy/fidghost/internal/repository"
	"github.com/timmy/fidghost/internal/service"
	"github.com/timmy/fidghost/internal/storage"
	"gorm.io/gorm"
)

// Services are the long-lived components built from a Config.
type Services struct {
	Pin      *service.PinService
	Generate *service.GenerateService
	Profile  *service.ProfileService
	Mint     *service.MintService
	Pins     *repository.PinRepository // nil when the ledger is disabled

	db *gorm.DB
}

// New builds every service from cfg. The database and mirror are optional:
// the "none" database driver disables the ledger, and the mirror is only
// created when enabled.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	s := &Services{}

	var store service.PinStore
	if cfg.Database.Driver != "none" {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.db = db
		s.Pins = repository.NewPinRepository(db)
		store = s.Pins
	}

	var mirror storage.ObjectStorage
	if cfg.Mirror.Enabled {
		objectStorage, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Mirror.Type),
			Endpoint:  cfg.Mirror.Endpoint,
			AccessKey: cfg.Mirror.AccessKey,
			SecretKey: cfg.Mirror.SecretKey,
			UseSSL:    cfg.Mirror.UseSSL,
			Bucket:    cfg.Mirror.Bucket,
			Region:    cfg.Mirror.Region,
			PublicURL: cfg.Mirror.PublicURL,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize mirror storage: %w", err)
		}
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to ensure mirror bucket: %w", err)
		}
		mirror = objectStorage
		log.WithField("bucket", cfg.Mirror.Bucket).Info("Artifact mirror enabled")
	}

	uploader := storage.NewLighthouseUploader(&storage.LighthouseConfig{
		APIKey:   cfg.Lighthouse.APIKey,
		Endpoint: cfg.Lighthouse.Endpoint,
		Timeout:  cfg.Lighthouse.Timeout,
	})
	gateways := service.NewGatewayResolver(
		service.NewHTTPGatewayProber(cfg.Gateway.ProbeTimeout),
		cfg.Gateway.PublicHost,
		cfg.Gateway.PrivateHost,
	)

	var rnd service.RandomSource
	if cfg.Pin.RandomSeed != 0 {
		rnd = service.NewLockedRandom(cfg.Pin.RandomSeed)
	}

	s.Pin = service.NewPinService(
		service.NewHTTPImageFetcher(cfg.Pin.FetchTimeout, cfg.Pin.MaxImageBytes),
		uploader,
		gateways,
		store,
		mirror,
		log,
		&service.PinConfig{
			WorkDir:       cfg.Pin.WorkDir,
			ContentScheme: cfg.Pin.ContentScheme,
			MirrorPrefix:  cfg.Mirror.Prefix,
			Random:        rnd,
		},
	)

	s.Generate = service.NewGenerateService(&service.GenerateConfig{
		APIKey:  cfg.Replicate.APIKey,
		BaseURL: cfg.Replicate.BaseURL,
		Model:   cfg.Replicate.Model,
		Prompt:  cfg.Replicate.Prompt,
		Timeout: cfg.Replicate.Timeout,
	})
	if !s.Generate.Enabled() {
		log.Warn("REPLICATE_API_KEY not set, generate returns the avatar unchanged")
	}

	s.Profile = service.NewProfileService(&service.ProfileConfig{
		NeynarAPIKey:  cfg.Farcaster.NeynarAPIKey,
		NeynarBaseURL: cfg.Farcaster.NeynarBaseURL,
		AvatarBaseURL: cfg.Farcaster.AvatarBaseURL,
	})

	mint, err := service.NewMintService(&service.MintConfig{
		ContractAddress: cfg.Mint.ContractAddress,
		ChainID:         cfg.Mint.ChainID,
		RPCURL:          cfg.Mint.RPCURL,
		Price:           cfg.Mint.Price,
		ContentScheme:   cfg.Pin.ContentScheme,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Mint = mint

	return s, nil
}

// Close releases the database connection.
func (s *Services) Close() {
	if s.db == nil {
		return
	}
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
