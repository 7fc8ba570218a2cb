package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/repository"
)

// Compile-time check to ensure diskAssetStore implements AssetStore
var _ AssetStore = (*diskAssetStore)(nil)

// diskAssetStore keeps blobs as files under a mounted volume and serves them
// through a public base URL. Every stored blob gets a registry row so that
// URL resolution can answer "absent" for unknown ids.
type diskAssetStore struct {
	assets        repository.AssetRepository
	savePath      string
	publicBaseURL string
	logger        *zap.Logger
}

// NewDiskAssetStore creates a disk-backed AssetStore.
func NewDiskAssetStore(assets repository.AssetRepository, savePath, publicBaseURL string, logger *zap.Logger) (AssetStore, error) {
	if savePath == "" {
		return nil, errors.New("asset save path (ASSET_SAVE_PATH) is not configured")
	}
	if publicBaseURL == "" {
		return nil, errors.New("asset public base URL (ASSET_PUBLIC_BASE_URL) is not configured")
	}
	if err := os.MkdirAll(savePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset save path: %w", err)
	}
	return &diskAssetStore{
		assets:        assets,
		savePath:      savePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger.Named("DiskAssetStore"),
	}, nil
}

// Store writes the blob to disk and registers it.
func (s *diskAssetStore) Store(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (uuid.UUID, error) {
	if len(data) == 0 {
		return uuid.Nil, fmt.Errorf("%w: empty blob", models.ErrInvalidInput)
	}

	id := uuid.New()
	fileName := blobFileName(id, contentType)
	filePath := filepath.Join(s.savePath, fileName)

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		s.logger.Error("Failed to write blob", zap.String("path", filePath), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to write blob: %w", err)
	}

	asset := &models.Asset{
		ID:          id,
		OwnerID:     ownerID,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		// Keep the registry authoritative: an unregistered file is garbage,
		// not a live asset.
		_ = os.Remove(filePath)
		return uuid.Nil, err
	}

	s.logger.Info("Blob stored",
		zap.String("assetID", id.String()),
		zap.Int("sizeBytes", len(data)),
		zap.String("contentType", contentType),
	)
	return id, nil
}

// ResolveURL returns the public URL for a registered asset.
func (s *diskAssetStore) ResolveURL(ctx context.Context, id uuid.UUID) (string, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.publicBaseURL + "/" + blobFileName(asset.ID, asset.ContentType), nil
}

// blobFileName derives the on-disk name from the asset id and content type.
func blobFileName(id uuid.UUID, contentType string) string {
	return id.String() + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
