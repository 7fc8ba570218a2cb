package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// Compile-time check to ensure pgCharacterRepository implements CharacterRepository
var _ CharacterRepository = (*pgCharacterRepository)(nil)

const (
	characterFields = `id, name, description, creator_id, original_image_id, transformed_image_id, style, is_public, created_at, updated_at`

	createCharacterQuery = `
		INSERT INTO characters (id, name, description, creator_id, original_image_id, transformed_image_id, style, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	getCharacterByIDQuery      = `SELECT ` + characterFields + ` FROM characters WHERE id = $1`
	listCharactersByCreatorQuery = `SELECT ` + characterFields + ` FROM characters WHERE creator_id = $1 ORDER BY created_at DESC`
	listPublicCharactersQuery  = `SELECT ` + characterFields + ` FROM characters WHERE is_public ORDER BY created_at DESC`
	publishCharacterQuery      = `UPDATE characters SET is_public = TRUE, updated_at = NOW() WHERE id = $1`
	updateCharacterImageQuery  = `UPDATE characters SET transformed_image_id = $2, updated_at = NOW() WHERE id = $1`
)

type pgCharacterRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db DBTX, logger *zap.Logger) CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

// Create inserts a new character. Generates the ID when unset.
func (r *pgCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	if character.ID == uuid.Nil {
		character.ID = uuid.New()
	}
	now := time.Now().UTC()
	character.CreatedAt = now
	character.UpdatedAt = now

	logFields := []zap.Field{
		zap.String("characterID", character.ID.String()),
		zap.String("creatorID", character.CreatorID.String()),
		zap.String("style", string(character.Style)),
	}
	r.logger.Debug("Creating character", logFields...)

	_, err := r.db.Exec(ctx, createCharacterQuery,
		character.ID,
		character.Name,
		character.Description,
		character.CreatorID,
		character.OriginalImageID,
		character.TransformedImageID,
		character.Style,
		character.IsPublic,
		character.CreatedAt,
		character.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create character", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create character: %w", err)
	}

	r.logger.Info("Character created", logFields...)
	return nil
}

// GetByID returns a character by its ID.
func (r *pgCharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	var character models.Character
	err := pgxscan.Get(ctx, r.db, &character, getCharacterByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Character not found", zap.String("characterID", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get character", zap.String("characterID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get character %s: %w", id, err)
	}
	return &character, nil
}

// ListByCreator returns all characters owned by the given user, newest first.
func (r *pgCharacterRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Character, error) {
	var characters []models.Character
	err := pgxscan.Select(ctx, r.db, &characters, listCharactersByCreatorQuery, creatorID)
	if err != nil {
		r.logger.Error("Failed to list characters by creator", zap.String("creatorID", creatorID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list characters for user %s: %w", creatorID, err)
	}
	return characters, nil
}

// ListPublic returns all characters flagged public, across all users.
func (r *pgCharacterRepository) ListPublic(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	err := pgxscan.Select(ctx, r.db, &characters, listPublicCharactersQuery)
	if err != nil {
		r.logger.Error("Failed to list public characters", zap.Error(err))
		return nil, fmt.Errorf("failed to list public characters: %w", err)
	}
	return characters, nil
}

// Publish flips is_public to true.
func (r *pgCharacterRepository) Publish(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, publishCharacterQuery, id)
	if err != nil {
		r.logger.Error("Failed to publish character", zap.String("characterID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to publish character %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Character published", zap.String("characterID", id.String()))
	return nil
}

// UpdateTransformedImage overwrites the transformed image reference.
func (r *pgCharacterRepository) UpdateTransformedImage(ctx context.Context, id, assetID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, updateCharacterImageQuery, id, assetID)
	if err != nil {
		r.logger.Error("Failed to update character image",
			zap.String("characterID", id.String()),
			zap.String("assetID", assetID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to update character %s image: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("Character image updated",
		zap.String("characterID", id.String()),
		zap.String("assetID", assetID.String()),
	)
	return nil
}
