package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/fumiama/go-docx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/repository"
)

// ExportService renders stories as downloadable Word documents.
type ExportService interface {
	// ExportStory builds a .docx for the story and returns the suggested
	// filename together with the document bytes. Owner-only.
	ExportStory(ctx context.Context, callerID, storyID uuid.UUID) (string, []byte, error)
}

// Compile-time check to ensure exportServiceImpl implements ExportService
var _ ExportService = (*exportServiceImpl)(nil)

type exportServiceImpl struct {
	storyRepo repository.StoryRepository
	logger    *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(storyRepo repository.StoryRepository, logger *zap.Logger) ExportService {
	return &exportServiceImpl{
		storyRepo: storyRepo,
		logger:    logger.Named("ExportService"),
	}
}

func (s *exportServiceImpl) ExportStory(ctx context.Context, callerID, storyID uuid.UUID) (string, []byte, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return "", nil, err
	}
	if story.AuthorID != callerID {
		return "", nil, models.ErrForbidden
	}

	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph().Justification("center")
	title.AddText(story.Title).Size("36").Bold()

	if story.Description != nil && *story.Description != "" {
		desc := doc.AddParagraph().Justification("center")
		desc.AddText(*story.Description).Size("24")
	}
	doc.AddParagraph()

	for _, page := range story.Pages {
		heading := doc.AddParagraph()
		heading.AddText(fmt.Sprintf("Page %d", page.PageNumber)).Size("28").Bold()
		doc.AddParagraph().AddText(page.Text)
		doc.AddParagraph()
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		s.logger.Error("Failed to render story document",
			zap.String("storyID", storyID.String()), zap.Error(err))
		return "", nil, fmt.Errorf("failed to render story document: %w", err)
	}

	filename := slugify(story.Title) + ".docx"
	s.logger.Info("Story exported",
		zap.String("storyID", storyID.String()),
		zap.String("filename", filename),
		zap.Int("sizeBytes", buf.Len()))
	return filename, buf.Bytes(), nil
}

// slugify lowercases the title and replaces runs of non-alphanumeric
// characters with single hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "story"
	}
	return slug
}
