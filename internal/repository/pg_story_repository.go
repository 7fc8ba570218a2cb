package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// Compile-time check to ensure pgStoryRepository implements StoryRepository
var _ StoryRepository = (*pgStoryRepository)(nil)

const (
	storyFields = `id, title, description, type, author_id, pages, is_published, created_at, updated_at`

	createStoryQuery = `
		INSERT INTO stories (id, title, description, type, author_id, pages, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	getStoryByIDQuery     = `SELECT ` + storyFields + ` FROM stories WHERE id = $1`
	listStoriesByAuthorQuery = `SELECT ` + storyFields + ` FROM stories WHERE author_id = $1 ORDER BY created_at DESC`
	updateStoryPagesQuery = `UPDATE stories SET pages = $2, updated_at = NOW() WHERE id = $1`
	publishStoryQuery     = `UPDATE stories SET is_published = TRUE, updated_at = NOW() WHERE id = $1`
)

type pgStoryRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgStoryRepository creates a PostgreSQL-backed StoryRepository.
func NewPgStoryRepository(db DBTX, logger *zap.Logger) StoryRepository {
	return &pgStoryRepository{
		db:     db,
		logger: logger.Named("PgStoryRepo"),
	}
}

// scanStory scans one story row, decoding the JSONB page sequence.
func scanStory(row pgx.Row) (*models.Story, error) {
	var story models.Story
	var pagesJSON []byte

	err := row.Scan(
		&story.ID,
		&story.Title,
		&story.Description,
		&story.Type,
		&story.AuthorID,
		&pagesJSON,
		&story.IsPublished,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if len(pagesJSON) > 0 {
		if err := json.Unmarshal(pagesJSON, &story.Pages); err != nil {
			return nil, fmt.Errorf("failed to decode story pages: %w", err)
		}
	}
	if story.Pages == nil {
		story.Pages = []models.StoryPage{}
	}
	return &story, nil
}

// Create inserts a new story. Pages are stored exactly as submitted.
func (r *pgStoryRepository) Create(ctx context.Context, story *models.Story) error {
	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	now := time.Now().UTC()
	story.CreatedAt = now
	story.UpdatedAt = now
	if story.Pages == nil {
		story.Pages = []models.StoryPage{}
	}

	pagesJSON, err := json.Marshal(story.Pages)
	if err != nil {
		return fmt.Errorf("failed to encode story pages: %w", err)
	}

	logFields := []zap.Field{
		zap.String("storyID", story.ID.String()),
		zap.String("authorID", story.AuthorID.String()),
		zap.Int("pages", len(story.Pages)),
	}
	r.logger.Debug("Creating story", logFields...)

	_, err = r.db.Exec(ctx, createStoryQuery,
		story.ID,
		story.Title,
		story.Description,
		story.Type,
		story.AuthorID,
		pagesJSON,
		story.IsPublished,
		story.CreatedAt,
		story.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create story", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create story: %w", err)
	}

	r.logger.Info("Story created", logFields...)
	return nil
}

// GetByID returns a story by its ID.
func (r *pgStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	row := r.db.QueryRow(ctx, getStoryByIDQuery, id)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Story not found", zap.String("storyID", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get story", zap.String("storyID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get story %s: %w", id, err)
	}
	return story, nil
}

// ListByAuthor returns the author's stories, newest first.
func (r *pgStoryRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Story, error) {
	rows, err := r.db.Query(ctx, listStoriesByAuthorQuery, authorID)
	if err != nil {
		r.logger.Error("Failed to list stories by author", zap.String("authorID", authorID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list stories for user %s: %w", authorID, err)
	}
	defer rows.Close()

	stories := make([]models.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		stories = append(stories, *story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate story rows: %w", err)
	}
	return stories, nil
}

// UpdatePages replaces the story's page sequence.
func (r *pgStoryRepository) UpdatePages(ctx context.Context, id uuid.UUID, pages []models.StoryPage) error {
	if pages == nil {
		pages = []models.StoryPage{}
	}
	pagesJSON, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to encode story pages: %w", err)
	}

	tag, err := r.db.Exec(ctx, updateStoryPagesQuery, id, pagesJSON)
	if err != nil {
		r.logger.Error("Failed to update story pages", zap.String("storyID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update story %s pages: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Debug("Story pages updated", zap.String("storyID", id.String()), zap.Int("pages", len(pages)))
	return nil
}

// Publish flips is_published to true.
func (r *pgStoryRepository) Publish(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, publishStoryQuery, id)
	if err != nil {
		r.logger.Error("Failed to publish story", zap.String("storyID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to publish story %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Story published", zap.String("storyID", id.String()))
	return nil
}
