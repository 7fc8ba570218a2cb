package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/catalog"
	"storybook-server/internal/models"
	"storybook-server/internal/repository"
)

// CreateStoryInput is the validated payload for story creation. Pages are
// stored exactly as submitted; page numbering is only managed for stories
// edited through the add/remove operations.
type CreateStoryInput struct {
	Title       string
	Description *string
	Type        models.StoryType
	Pages       []models.StoryPage
}

// AddPageInput is the payload for appending a page to an existing story.
type AddPageInput struct {
	Text               string
	OriginalImageID    *uuid.UUID
	TransformedImageID *uuid.UUID
	CharacterIDs       []uuid.UUID
}

// StoryService manages stories and the premade catalog.
type StoryService interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreateStoryInput) (*models.Story, error)
	ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Story, error)
	ListPremade(ctx context.Context) ([]models.PremadeStory, error)
	// Publish marks the story published. Owner-only, idempotent.
	Publish(ctx context.Context, callerID, storyID uuid.UUID) error
	// AddPage appends a page with the next contiguous page number.
	AddPage(ctx context.Context, callerID, storyID uuid.UUID, input AddPageInput) (*models.Story, error)
	// RemovePage deletes the page with the given number and renumbers the
	// remaining pages contiguously from 1, preserving their order and content.
	RemovePage(ctx context.Context, callerID, storyID uuid.UUID, pageNumber int) (*models.Story, error)
	// GeneratePrintURL returns the print-on-demand order URL for the story.
	GeneratePrintURL(ctx context.Context, callerID, storyID uuid.UUID) (*models.PrintResult, error)
}

// Compile-time check to ensure storyServiceImpl implements StoryService
var _ StoryService = (*storyServiceImpl)(nil)

type storyServiceImpl struct {
	storyRepo    repository.StoryRepository
	catalog      *catalog.Catalog
	printBaseURL string
	logger       *zap.Logger
}

// NewStoryService creates a new StoryService.
func NewStoryService(
	storyRepo repository.StoryRepository,
	cat *catalog.Catalog,
	printBaseURL string,
	logger *zap.Logger,
) StoryService {
	return &storyServiceImpl{
		storyRepo:    storyRepo,
		catalog:      cat,
		printBaseURL: strings.TrimRight(printBaseURL, "/"),
		logger:       logger.Named("StoryService"),
	}
}

func (s *storyServiceImpl) Create(ctx context.Context, authorID uuid.UUID, input CreateStoryInput) (*models.Story, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: story title cannot be empty", models.ErrInvalidInput)
	}
	if input.Type == "" {
		input.Type = models.StoryTypeCustom
	}
	if input.Type != models.StoryTypeCustom && input.Type != models.StoryTypePremade {
		return nil, fmt.Errorf("%w: unknown story type %q", models.ErrInvalidInput, input.Type)
	}

	story := &models.Story{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Type:        input.Type,
		AuthorID:    authorID,
		Pages:       input.Pages,
		IsPublished: false,
	}
	if story.Pages == nil {
		story.Pages = []models.StoryPage{}
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		s.logger.Error("Failed to create story", zap.Error(err), zap.String("authorID", authorID.String()))
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	s.logger.Info("Story created",
		zap.String("storyID", story.ID.String()),
		zap.Int("pages", len(story.Pages)))
	return story, nil
}

func (s *storyServiceImpl) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Story, error) {
	stories, err := s.storyRepo.ListByAuthor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func (s *storyServiceImpl) ListPremade(ctx context.Context) ([]models.PremadeStory, error) {
	return s.catalog.List(), nil
}

func (s *storyServiceImpl) Publish(ctx context.Context, callerID, storyID uuid.UUID) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.AuthorID != callerID {
		s.logger.Warn("Publish requested by non-owner",
			zap.String("storyID", storyID.String()),
			zap.String("callerID", callerID.String()))
		return models.ErrForbidden
	}
	if err := s.storyRepo.Publish(ctx, storyID); err != nil {
		return fmt.Errorf("failed to publish story: %w", err)
	}
	s.logger.Info("Story published", zap.String("storyID", storyID.String()))
	return nil
}

func (s *storyServiceImpl) AddPage(ctx context.Context, callerID, storyID uuid.UUID, input AddPageInput) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != callerID {
		return nil, models.ErrForbidden
	}

	page := models.StoryPage{
		PageNumber:         len(story.Pages) + 1,
		Text:               input.Text,
		OriginalImageID:    input.OriginalImageID,
		TransformedImageID: input.TransformedImageID,
		CharacterIDs:       input.CharacterIDs,
	}
	story.Pages = append(story.Pages, page)

	if err := s.storyRepo.UpdatePages(ctx, storyID, story.Pages); err != nil {
		return nil, fmt.Errorf("failed to add story page: %w", err)
	}
	s.logger.Info("Story page added",
		zap.String("storyID", storyID.String()),
		zap.Int("pageNumber", page.PageNumber))
	return story, nil
}

func (s *storyServiceImpl) RemovePage(ctx context.Context, callerID, storyID uuid.UUID, pageNumber int) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != callerID {
		return nil, models.ErrForbidden
	}

	remaining := make([]models.StoryPage, 0, len(story.Pages))
	removed := false
	for _, page := range story.Pages {
		if page.PageNumber == pageNumber {
			removed = true
			continue
		}
		remaining = append(remaining, page)
	}
	if !removed {
		return nil, fmt.Errorf("%w: page %d", models.ErrNotFound, pageNumber)
	}

	// Renumber contiguously from 1 keeping the surviving order.
	for i := range remaining {
		remaining[i].PageNumber = i + 1
	}
	story.Pages = remaining

	if err := s.storyRepo.UpdatePages(ctx, storyID, story.Pages); err != nil {
		return nil, fmt.Errorf("failed to remove story page: %w", err)
	}
	s.logger.Info("Story page removed",
		zap.String("storyID", storyID.String()),
		zap.Int("pageNumber", pageNumber))
	return story, nil
}

func (s *storyServiceImpl) GeneratePrintURL(ctx context.Context, callerID, storyID uuid.UUID) (*models.PrintResult, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != callerID {
		return nil, models.ErrForbidden
	}
	return &models.PrintResult{
		PrintURL: fmt.Sprintf("%s/order?story=%s", s.printBaseURL, storyID),
		Message:  "Demo: In production, this would integrate with a print-on-demand service!",
	}, nil
}
