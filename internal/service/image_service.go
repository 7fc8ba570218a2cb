package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/repository"
	"storybook-server/internal/storage"
)

// ImageService covers the asset-store surface: upload channels, direct
// uploads, URL resolution and the style-transform flow.
type ImageService interface {
	// CreateUploadChannel issues a one-time upload token and the URL the
	// client PUTs the bytes to.
	CreateUploadChannel(ctx context.Context, callerID uuid.UUID) (*models.UploadChannel, error)
	// HandleDirectUpload consumes the one-time token and stores the bytes,
	// returning the new asset id. The token is the only credential.
	HandleDirectUpload(ctx context.Context, token string, data []byte, contentType string) (uuid.UUID, error)
	// Transform records a style transform for the given asset. The current
	// provider integration is an identity transform: the record completes
	// immediately with the transformed id equal to the original.
	Transform(ctx context.Context, callerID, originalImageID uuid.UUID, style models.CharacterStyle) (*models.TransformResult, error)
	// ListTransformed returns the caller's completed transformations with
	// both sides resolved to URLs.
	ListTransformed(ctx context.Context, callerID uuid.UUID) ([]models.TransformationWithURLs, error)
	// ResolveImageURL maps an asset id to a fetchable URL.
	ResolveImageURL(ctx context.Context, imageID uuid.UUID) (string, error)
}

// Compile-time check to ensure imageServiceImpl implements ImageService
var _ ImageService = (*imageServiceImpl)(nil)

type imageServiceImpl struct {
	transformationRepo repository.ImageTransformationRepository
	assetStore         storage.AssetStore
	uploadChannels     storage.UploadChannelStore
	logger             *zap.Logger
}

// NewImageService creates a new ImageService.
func NewImageService(
	transformationRepo repository.ImageTransformationRepository,
	assetStore storage.AssetStore,
	uploadChannels storage.UploadChannelStore,
	logger *zap.Logger,
) ImageService {
	return &imageServiceImpl{
		transformationRepo: transformationRepo,
		assetStore:         assetStore,
		uploadChannels:     uploadChannels,
		logger:             logger.Named("ImageService"),
	}
}

func (s *imageServiceImpl) CreateUploadChannel(ctx context.Context, callerID uuid.UUID) (*models.UploadChannel, error) {
	channel, err := s.uploadChannels.Create(ctx, callerID)
	if err != nil {
		s.logger.Error("Failed to create upload channel", zap.Error(err), zap.String("callerID", callerID.String()))
		return nil, fmt.Errorf("failed to create upload channel: %w", err)
	}
	s.logger.Debug("Upload channel created", zap.String("callerID", callerID.String()))
	return channel, nil
}

func (s *imageServiceImpl) HandleDirectUpload(ctx context.Context, token string, data []byte, contentType string) (uuid.UUID, error) {
	if len(data) == 0 {
		return uuid.Nil, fmt.Errorf("%w: empty upload body", models.ErrInvalidInput)
	}

	tokenID, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed token", models.ErrUploadTokenInvalid)
	}
	ownerID, err := s.uploadChannels.Consume(ctx, tokenID)
	if err != nil {
		return uuid.Nil, err
	}

	assetID, err := s.assetStore.Store(ctx, ownerID, data, contentType)
	if err != nil {
		s.logger.Error("Failed to store uploaded asset", zap.Error(err), zap.String("ownerID", ownerID.String()))
		return uuid.Nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("Upload stored",
		zap.String("assetID", assetID.String()),
		zap.String("ownerID", ownerID.String()),
		zap.Int("sizeBytes", len(data)))
	return assetID, nil
}

func (s *imageServiceImpl) Transform(ctx context.Context, callerID, originalImageID uuid.UUID, style models.CharacterStyle) (*models.TransformResult, error) {
	originalURL, err := s.assetStore.ResolveURL(ctx, originalImageID)
	if err != nil {
		return nil, err
	}

	transformation := &models.ImageTransformation{
		OriginalImageID:    originalImageID,
		TransformedImageID: originalImageID,
		Style:              style,
		UserID:             callerID,
		Status:             models.TransformationCompleted,
	}
	if err := s.transformationRepo.Create(ctx, transformation); err != nil {
		s.logger.Error("Failed to record transformation", zap.Error(err))
		return nil, fmt.Errorf("failed to record transformation: %w", err)
	}

	s.logger.Info("Transformation recorded",
		zap.String("transformationID", transformation.ID.String()),
		zap.String("style", string(style)))
	return &models.TransformResult{
		Success:             true,
		TransformedImageURL: originalURL,
		Message:             fmt.Sprintf("Demo: Transforming to %s style! Real AI integration coming soon.", style),
	}, nil
}

func (s *imageServiceImpl) ListTransformed(ctx context.Context, callerID uuid.UUID) ([]models.TransformationWithURLs, error) {
	transformations, err := s.transformationRepo.ListCompletedByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transformations: %w", err)
	}

	out := make([]models.TransformationWithURLs, 0, len(transformations))
	for _, t := range transformations {
		entry := models.TransformationWithURLs{ImageTransformation: t}
		if url, resolveErr := s.assetStore.ResolveURL(ctx, t.OriginalImageID); resolveErr == nil {
			entry.OriginalURL = url
		}
		if url, resolveErr := s.assetStore.ResolveURL(ctx, t.TransformedImageID); resolveErr == nil {
			entry.TransformedURL = url
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *imageServiceImpl) ResolveImageURL(ctx context.Context, imageID uuid.UUID) (string, error) {
	return s.assetStore.ResolveURL(ctx, imageID)
}
