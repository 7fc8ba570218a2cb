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

// Compile-time check to ensure pgScrapbookRepository implements ScrapbookRepository
var _ ScrapbookRepository = (*pgScrapbookRepository)(nil)

const (
	scrapbookFields = `id, title, description, creator_id, image_ids, layout, is_published, created_at, updated_at`

	createScrapbookQuery = `
		INSERT INTO scrapbooks (id, title, description, creator_id, image_ids, layout, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	getScrapbookByIDQuery       = `SELECT ` + scrapbookFields + ` FROM scrapbooks WHERE id = $1`
	listScrapbooksByCreatorQuery = `SELECT ` + scrapbookFields + ` FROM scrapbooks WHERE creator_id = $1 ORDER BY created_at DESC`
	updateScrapbookQuery        = `
		UPDATE scrapbooks SET
			title = $2,
			description = $3,
			image_ids = $4,
			layout = $5,
			updated_at = NOW()
		WHERE id = $1
	`
)

type pgScrapbookRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgScrapbookRepository creates a PostgreSQL-backed ScrapbookRepository.
func NewPgScrapbookRepository(db DBTX, logger *zap.Logger) ScrapbookRepository {
	return &pgScrapbookRepository{
		db:     db,
		logger: logger.Named("PgScrapbookRepo"),
	}
}

// scanScrapbook scans one scrapbook row, decoding the ordered image id list.
func scanScrapbook(row pgx.Row) (*models.Scrapbook, error) {
	var scrapbook models.Scrapbook
	var imageIDsJSON []byte

	err := row.Scan(
		&scrapbook.ID,
		&scrapbook.Title,
		&scrapbook.Description,
		&scrapbook.CreatorID,
		&imageIDsJSON,
		&scrapbook.Layout,
		&scrapbook.IsPublished,
		&scrapbook.CreatedAt,
		&scrapbook.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if len(imageIDsJSON) > 0 {
		if err := json.Unmarshal(imageIDsJSON, &scrapbook.ImageIDs); err != nil {
			return nil, fmt.Errorf("failed to decode scrapbook image ids: %w", err)
		}
	}
	if scrapbook.ImageIDs == nil {
		scrapbook.ImageIDs = []uuid.UUID{}
	}
	return &scrapbook, nil
}

// Create inserts a new scrapbook. The image id order is stored as submitted.
func (r *pgScrapbookRepository) Create(ctx context.Context, scrapbook *models.Scrapbook) error {
	if scrapbook.ID == uuid.Nil {
		scrapbook.ID = uuid.New()
	}
	now := time.Now().UTC()
	scrapbook.CreatedAt = now
	scrapbook.UpdatedAt = now
	if scrapbook.ImageIDs == nil {
		scrapbook.ImageIDs = []uuid.UUID{}
	}

	imageIDsJSON, err := json.Marshal(scrapbook.ImageIDs)
	if err != nil {
		return fmt.Errorf("failed to encode scrapbook image ids: %w", err)
	}

	logFields := []zap.Field{
		zap.String("scrapbookID", scrapbook.ID.String()),
		zap.String("creatorID", scrapbook.CreatorID.String()),
		zap.Int("images", len(scrapbook.ImageIDs)),
	}
	r.logger.Debug("Creating scrapbook", logFields...)

	_, err = r.db.Exec(ctx, createScrapbookQuery,
		scrapbook.ID,
		scrapbook.Title,
		scrapbook.Description,
		scrapbook.CreatorID,
		imageIDsJSON,
		scrapbook.Layout,
		scrapbook.IsPublished,
		scrapbook.CreatedAt,
		scrapbook.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create scrapbook", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create scrapbook: %w", err)
	}

	r.logger.Info("Scrapbook created", logFields...)
	return nil
}

// GetByID returns a scrapbook by its ID.
func (r *pgScrapbookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scrapbook, error) {
	row := r.db.QueryRow(ctx, getScrapbookByIDQuery, id)
	scrapbook, err := scanScrapbook(row)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Scrapbook not found", zap.String("scrapbookID", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get scrapbook", zap.String("scrapbookID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get scrapbook %s: %w", id, err)
	}
	return scrapbook, nil
}

// ListByCreator returns the user's scrapbooks, newest first.
func (r *pgScrapbookRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Scrapbook, error) {
	rows, err := r.db.Query(ctx, listScrapbooksByCreatorQuery, creatorID)
	if err != nil {
		r.logger.Error("Failed to list scrapbooks by creator", zap.String("creatorID", creatorID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list scrapbooks for user %s: %w", creatorID, err)
	}
	defer rows.Close()

	scrapbooks := make([]models.Scrapbook, 0)
	for rows.Next() {
		scrapbook, err := scanScrapbook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scrapbook row: %w", err)
		}
		scrapbooks = append(scrapbooks, *scrapbook)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scrapbook rows: %w", err)
	}
	return scrapbooks, nil
}

// Update replaces the scrapbook's mutable fields.
func (r *pgScrapbookRepository) Update(ctx context.Context, scrapbook *models.Scrapbook) error {
	if scrapbook.ImageIDs == nil {
		scrapbook.ImageIDs = []uuid.UUID{}
	}
	imageIDsJSON, err := json.Marshal(scrapbook.ImageIDs)
	if err != nil {
		return fmt.Errorf("failed to encode scrapbook image ids: %w", err)
	}

	tag, err := r.db.Exec(ctx, updateScrapbookQuery,
		scrapbook.ID,
		scrapbook.Title,
		scrapbook.Description,
		imageIDsJSON,
		scrapbook.Layout,
	)
	if err != nil {
		r.logger.Error("Failed to update scrapbook", zap.String("scrapbookID", scrapbook.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update scrapbook %s: %w", scrapbook.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Scrapbook updated", zap.String("scrapbookID", scrapbook.ID.String()))
	return nil
}
