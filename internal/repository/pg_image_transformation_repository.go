package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// Compile-time check to ensure pgImageTransformationRepository implements ImageTransformationRepository
var _ ImageTransformationRepository = (*pgImageTransformationRepository)(nil)

const (
	createTransformationQuery = `
		INSERT INTO image_transformations (id, original_image_id, transformed_image_id, style, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	listCompletedTransformationsQuery = `
		SELECT id, original_image_id, transformed_image_id, style, user_id, status, created_at
		FROM image_transformations
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY created_at DESC
	`
)

type pgImageTransformationRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgImageTransformationRepository creates a PostgreSQL-backed ImageTransformationRepository.
func NewPgImageTransformationRepository(db DBTX, logger *zap.Logger) ImageTransformationRepository {
	return &pgImageTransformationRepository{
		db:     db,
		logger: logger.Named("PgImageTransformationRepo"),
	}
}

// Create records one transform attempt.
func (r *pgImageTransformationRepository) Create(ctx context.Context, transformation *models.ImageTransformation) error {
	if transformation.ID == uuid.Nil {
		transformation.ID = uuid.New()
	}
	transformation.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, createTransformationQuery,
		transformation.ID,
		transformation.OriginalImageID,
		transformation.TransformedImageID,
		transformation.Style,
		transformation.UserID,
		transformation.Status,
		transformation.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create image transformation",
			zap.String("userID", transformation.UserID.String()),
			zap.String("originalImageID", transformation.OriginalImageID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create image transformation: %w", err)
	}

	r.logger.Info("Image transformation recorded",
		zap.String("transformationID", transformation.ID.String()),
		zap.String("status", string(transformation.Status)),
	)
	return nil
}

// ListCompletedByUser returns the user's completed transformations, newest first.
func (r *pgImageTransformationRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.ImageTransformation, error) {
	var transformations []models.ImageTransformation
	err := pgxscan.Select(ctx, r.db, &transformations, listCompletedTransformationsQuery, userID)
	if err != nil {
		r.logger.Error("Failed to list completed transformations", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list transformations for user %s: %w", userID, err)
	}
	return transformations, nil
}
