package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/fidghost/internal/domain"
	"github.com/timmy/fidghost/internal/logger"
	"github.com/timmy/fidghost/internal/storage"
)

// PinStore persists the ledger row of a finished pin.
type PinStore interface {
	Create(ctx context.Context, pin *domain.PinRecord) error
}

// PinService pins a generated ghost image and its NFT metadata.
type PinService struct {
	fetcher      ImageFetcher
	uploader     storage.Uploader
	gateways     *GatewayResolver
	store        PinStore
	mirror       storage.ObjectStorage
	traits       *TraitSampler
	logger       *logger.Logger
	workDir      string
	scheme       string
	mirrorPrefix string
}

// PinConfig holds configuration for the pin service.
type PinConfig struct {
	WorkDir       string
	ContentScheme string
	MirrorPrefix  string
	Random        RandomSource
}

// PinRequest is the caller input of a pin run.
type PinRequest struct {
	ImageURL    string     `json:"imageUrl"`
	FID         domain.FID `json:"fid"`
	DisplayName string     `json:"displayName,omitempty"`
	Rarity      string     `json:"rarity,omitempty"`
	Mood        string     `json:"mood,omitempty"`
}

// NewPinService creates a new pin service.
// Parameters:
//   - fetcher: downloads the source image.
//   - uploader: content-addressable uploader for both artifacts.
//   - gateways: picks the gateway URL returned for each artifact.
//   - store: ledger for finished pins; may be nil.
//   - mirror: optional object storage copy of each artifact; may be nil.
//   - log: base logger.
//   - cfg: working directory, content scheme and random source.
//
// Returns:
//   - *PinService: initialized service.
func NewPinService(
	fetcher ImageFetcher,
	uploader storage.Uploader,
	gateways *GatewayResolver,
	store PinStore,
	mirror storage.ObjectStorage,
	log *logger.Logger,
	cfg *PinConfig,
) *PinService {
	scheme := cfg.ContentScheme
	if scheme == "" {
		scheme = "ipfs"
	}
	return &PinService{
		fetcher:      fetcher,
		uploader:     uploader,
		gateways:     gateways,
		store:        store,
		mirror:       mirror,
		traits:       NewTraitSampler(cfg.Random),
		logger:       log,
		workDir:      cfg.WorkDir,
		scheme:       scheme,
		mirrorPrefix: cfg.MirrorPrefix,
	}
}

// log returns a logger from context if available, otherwise the service logger
func (s *PinService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Pin downloads the image, pins it, builds and pins the metadata, and resolves
// a gateway URL for each. Transient files are removed on every exit path.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: caller input; imageUrl and fid are required.
//
// Returns:
//   - *domain.PinnedAsset: canonical URIs and advisory gateway URLs.
//   - error: ErrInvalidArgument, *UpstreamFetchError or *UploadError.
func (s *PinService) Pin(ctx context.Context, req *PinRequest) (*domain.PinnedAsset, error) {
	rec, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ctx = logger.SetComponent(ctx, "pin")
	ctx = logger.SetFID(ctx, rec.SubjectID.String())

	ws, err := NewWorkspace(s.workDir)
	if err != nil {
		return nil, err
	}
	defer s.closeWorkspace(ctx, ws)

	imageData, err := s.fetcher.Fetch(ctx, rec.SourceImageURL)
	if err != nil {
		return nil, err
	}

	ext, contentType := detectImageFormat(imageData)
	imageName := domain.ImageFilename(rec.SubjectID, ext)
	imagePath, err := ws.WriteFile(imageName, imageData)
	if err != nil {
		return nil, err
	}

	imageCID, err := s.upload(ctx, imagePath, ArtifactImage)
	if err != nil {
		return nil, err
	}
	s.log(ctx).WithField(logger.FieldCID, imageCID).Debug("Image pinned")

	rarity, mood := s.traits.Assign(rec.Rarity, rec.Mood)
	imageURI := domain.ContentURI(s.scheme, imageCID, imageName)

	metadata, err := json.Marshal(domain.NewGhostMetadata(rec.SubjectID, imageURI, rarity, mood))
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	metaName := domain.MetadataFilename(rec.SubjectID)
	metaPath, err := ws.WriteFile(metaName, metadata)
	if err != nil {
		return nil, err
	}

	metaCID, err := s.upload(ctx, metaPath, ArtifactMetadata)
	if err != nil {
		return nil, err
	}

	// Probes are independent; run them side by side
	var imageGateway, metaGateway string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		imageGateway = s.gateways.Resolve(ctx, imageCID, imageName)
	}()
	go func() {
		defer wg.Done()
		metaGateway = s.gateways.Resolve(ctx, metaCID, metaName)
	}()
	wg.Wait()

	asset := &domain.PinnedAsset{
		ImageCID:           imageCID,
		MetadataCID:        metaCID,
		ImageURI:           imageURI,
		MetadataURI:        domain.ContentURI(s.scheme, metaCID, metaName),
		ImageGatewayURL:    imageGateway,
		MetadataGatewayURL: metaGateway,
		Rarity:             rarity,
		Mood:               mood,
	}

	// Both artifacts are pinned by now; a caller hanging up must not lose the ledger row
	postCtx := context.WithoutCancel(ctx)
	postCtx = s.record(postCtx, rec, asset)
	s.mirrorArtifact(postCtx, imageCID, imageName, imageData, contentType)
	s.mirrorArtifact(postCtx, metaCID, metaName, metadata, "application/json")

	logger.With(logger.Fields{logger.FieldCID: metaCID}).
		WithDuration(time.Since(start).Milliseconds()).
		Info(postCtx, "Ghost pinned: rarity=%s, mood=%s", rarity, mood)

	return asset, nil
}

// validate turns a request into an AssetRecord or returns ErrInvalidArgument.
func (s *PinService) validate(req *PinRequest) (*domain.AssetRecord, error) {
	if req == nil {
		return nil, invalidArgument("missing imageUrl or fid")
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	fid := domain.FID(strings.TrimSpace(string(req.FID)))
	if imageURL == "" || fid == "" {
		return nil, invalidArgument("missing imageUrl or fid")
	}

	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalidArgument("imageUrl must be an http(s) URL")
	}

	// fid ends up in file names
	if strings.ContainsAny(string(fid), `/\`) || strings.Contains(string(fid), "..") {
		return nil, invalidArgument("fid %q contains path characters", fid)
	}

	rec := &domain.AssetRecord{
		SubjectID:      fid,
		SourceImageURL: imageURL,
		DisplayName:    strings.TrimSpace(req.DisplayName),
	}

	if req.Rarity != "" {
		r, ok := domain.ParseRarity(req.Rarity)
		if !ok {
			return nil, invalidArgument("unknown rarity %q", req.Rarity)
		}
		rec.Rarity = r
	}
	if req.Mood != "" {
		m, ok := domain.ParseMood(req.Mood)
		if !ok {
			return nil, invalidArgument("unknown mood %q", req.Mood)
		}
		rec.Mood = m
	}

	return rec, nil
}

// upload pins one artifact and extracts its content id.
func (s *PinService) upload(ctx context.Context, path, artifact string) (string, error) {
	resp, err := s.uploader.Upload(ctx, path)
	if err != nil {
		return "", &UploadError{Artifact: artifact, Err: err}
	}

	cid := storage.ExtractCID(resp)
	if cid == "" {
		return "", &UploadError{Artifact: artifact}
	}
	return cid, nil
}

// record writes the ledger row and returns ctx tagged with its id. The content
// is already pinned, so a failure here is logged rather than returned.
func (s *PinService) record(ctx context.Context, rec *domain.AssetRecord, asset *domain.PinnedAsset) context.Context {
	if s.store == nil {
		return ctx
	}

	pin := &domain.PinRecord{
		ID:             uuid.New().String(),
		FID:            rec.SubjectID.String(),
		DisplayName:    rec.DisplayName,
		SourceImageURL: rec.SourceImageURL,
		ImageCID:       asset.ImageCID,
		MetadataCID:    asset.MetadataCID,
		ImageURI:       asset.ImageURI,
		MetadataURI:    asset.MetadataURI,
		Rarity:         asset.Rarity,
		Mood:           asset.Mood,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Create(ctx, pin); err != nil {
		s.log(ctx).WithError(err).Warn("Failed to record pin")
		return ctx
	}
	ctx = logger.SetPinID(ctx, pin.ID)
	logger.CtxDebug(ctx, "Pin recorded")
	return ctx
}

// mirrorArtifact copies an artifact into object storage when a mirror is configured.
func (s *PinService) mirrorArtifact(ctx context.Context, cid, name string, data []byte, contentType string) {
	if s.mirror == nil {
		return
	}

	key := storage.MirrorKey(s.mirrorPrefix, cid, name)
	exists, err := s.mirror.Exists(ctx, key)
	if err != nil {
		s.log(ctx).WithError(err).WithField("mirror_key", key).Warn("Failed to check mirror")
		return
	}
	if exists {
		s.log(ctx).WithField("mirror_key", key).Debug("Artifact already mirrored, skipping upload")
		return
	}

	if err := s.mirror.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		s.log(ctx).WithError(err).WithField("mirror_key", key).Warn("Failed to mirror artifact")
		return
	}
	s.log(ctx).WithField("mirror_url", s.mirror.GetURL(key)).Debug("Artifact mirrored")
}

func (s *PinService) closeWorkspace(ctx context.Context, ws *Workspace) {
	if err := ws.Close(); err != nil {
		s.log(ctx).WithError(err).WithField("dir", ws.Dir()).Debug("Failed to remove workspace")
	}
}
