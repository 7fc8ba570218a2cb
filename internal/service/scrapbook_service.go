package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/repository"
	"storybook-server/internal/storage"
)

// CreateScrapbookInput is the validated payload for scrapbook creation.
// ImageIDs carry the display order and are stored without sorting or
// deduplication.
type CreateScrapbookInput struct {
	Title       string
	Description *string
	ImageIDs    []uuid.UUID
	Layout      models.ScrapbookLayout
}

// UpdateScrapbookInput replaces the scrapbook's mutable fields wholesale.
type UpdateScrapbookInput struct {
	Title       string
	Description *string
	ImageIDs    []uuid.UUID
	Layout      models.ScrapbookLayout
}

// ScrapbookService manages image scrapbooks.
type ScrapbookService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateScrapbookInput) (*models.Scrapbook, error)
	Update(ctx context.Context, callerID, scrapbookID uuid.UUID, input UpdateScrapbookInput) (*models.Scrapbook, error)
	ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Scrapbook, error)
	// Get resolves the scrapbook's image ids to URLs in stored order.
	// Readable by the owner, or by anyone once the scrapbook is published.
	Get(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.ScrapbookDetail, error)
	// GeneratePrintURL returns the print-on-demand order URL for the scrapbook.
	GeneratePrintURL(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.PrintResult, error)
}

// Compile-time check to ensure scrapbookServiceImpl implements ScrapbookService
var _ ScrapbookService = (*scrapbookServiceImpl)(nil)

type scrapbookServiceImpl struct {
	scrapbookRepo repository.ScrapbookRepository
	assetStore    storage.AssetStore
	printBaseURL  string
	logger        *zap.Logger
}

// NewScrapbookService creates a new ScrapbookService.
func NewScrapbookService(
	scrapbookRepo repository.ScrapbookRepository,
	assetStore storage.AssetStore,
	printBaseURL string,
	logger *zap.Logger,
) ScrapbookService {
	return &scrapbookServiceImpl{
		scrapbookRepo: scrapbookRepo,
		assetStore:    assetStore,
		printBaseURL:  strings.TrimRight(printBaseURL, "/"),
		logger:        logger.Named("ScrapbookService"),
	}
}

func (s *scrapbookServiceImpl) Create(ctx context.Context, creatorID uuid.UUID, input CreateScrapbookInput) (*models.Scrapbook, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: scrapbook title cannot be empty", models.ErrInvalidInput)
	}
	if len(input.ImageIDs) == 0 {
		return nil, fmt.Errorf("%w: scrapbook needs at least one image", models.ErrInvalidInput)
	}
	if input.Layout == "" {
		input.Layout = models.LayoutGrid
	}

	scrapbook := &models.Scrapbook{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		CreatorID:   creatorID,
		ImageIDs:    input.ImageIDs,
		Layout:      input.Layout,
		IsPublished: false,
	}

	if err := s.scrapbookRepo.Create(ctx, scrapbook); err != nil {
		s.logger.Error("Failed to create scrapbook", zap.Error(err), zap.String("creatorID", creatorID.String()))
		return nil, fmt.Errorf("failed to create scrapbook: %w", err)
	}
	s.logger.Info("Scrapbook created",
		zap.String("scrapbookID", scrapbook.ID.String()),
		zap.Int("images", len(scrapbook.ImageIDs)))
	return scrapbook, nil
}

func (s *scrapbookServiceImpl) Update(ctx context.Context, callerID, scrapbookID uuid.UUID, input UpdateScrapbookInput) (*models.Scrapbook, error) {
	scrapbook, err := s.scrapbookRepo.GetByID(ctx, scrapbookID)
	if err != nil {
		return nil, err
	}
	if scrapbook.CreatorID != callerID {
		s.logger.Warn("Update requested by non-owner",
			zap.String("scrapbookID", scrapbookID.String()),
			zap.String("callerID", callerID.String()))
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: scrapbook title cannot be empty", models.ErrInvalidInput)
	}
	if len(input.ImageIDs) == 0 {
		return nil, fmt.Errorf("%w: scrapbook needs at least one image", models.ErrInvalidInput)
	}
	if input.Layout == "" {
		input.Layout = scrapbook.Layout
	}

	scrapbook.Title = strings.TrimSpace(input.Title)
	scrapbook.Description = input.Description
	scrapbook.ImageIDs = input.ImageIDs
	scrapbook.Layout = input.Layout

	if err := s.scrapbookRepo.Update(ctx, scrapbook); err != nil {
		return nil, fmt.Errorf("failed to update scrapbook: %w", err)
	}
	s.logger.Info("Scrapbook updated", zap.String("scrapbookID", scrapbookID.String()))
	return scrapbook, nil
}

func (s *scrapbookServiceImpl) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Scrapbook, error) {
	scrapbooks, err := s.scrapbookRepo.ListByCreator(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrapbooks: %w", err)
	}
	return scrapbooks, nil
}

func (s *scrapbookServiceImpl) Get(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.ScrapbookDetail, error) {
	scrapbook, err := s.scrapbookRepo.GetByID(ctx, scrapbookID)
	if err != nil {
		return nil, err
	}
	if scrapbook.CreatorID != callerID && !scrapbook.IsPublished {
		return nil, models.ErrForbidden
	}

	// Resolved one by one in stored order; a dangling id yields an entry
	// with an empty URL rather than failing the whole read.
	images := make([]models.ScrapbookImage, 0, len(scrapbook.ImageIDs))
	for _, imageID := range scrapbook.ImageIDs {
		url, resolveErr := s.assetStore.ResolveURL(ctx, imageID)
		if resolveErr != nil {
			s.logger.Warn("Failed to resolve scrapbook image URL",
				zap.String("scrapbookID", scrapbookID.String()),
				zap.String("imageID", imageID.String()),
				zap.Error(resolveErr))
			url = ""
		}
		images = append(images, models.ScrapbookImage{ID: imageID, URL: url})
	}

	return &models.ScrapbookDetail{Scrapbook: *scrapbook, Images: images}, nil
}

func (s *scrapbookServiceImpl) GeneratePrintURL(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.PrintResult, error) {
	scrapbook, err := s.scrapbookRepo.GetByID(ctx, scrapbookID)
	if err != nil {
		return nil, err
	}
	if scrapbook.CreatorID != callerID {
		return nil, models.ErrForbidden
	}
	return &models.PrintResult{
		PrintURL: fmt.Sprintf("%s/scrapbook?id=%s", s.printBaseURL, scrapbookID),
		Message:  "Demo: In production, this would integrate with a print-on-demand service!",
	}, nil
}
