package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"storybook-server/internal/models"
)

// DBTX is the subset of pgxpool.Pool used by the repositories. Satisfied by
// *pgxpool.Pool and by pgx.Tx, which lets repositories run inside
// transactions without changing their signatures.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CharacterRepository persists storybook characters.
type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Character, error)
	ListPublic(ctx context.Context) ([]models.Character, error)
	// Publish sets is_public = true. Idempotent: publishing an already
	// public character is not an error.
	Publish(ctx context.Context, id uuid.UUID) error
	// UpdateTransformedImage overwrites the transformed image reference.
	// Regeneration is destructive; no version history is kept.
	UpdateTransformedImage(ctx context.Context, id, assetID uuid.UUID) error
}

// StoryRepository persists stories and their page sequences.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Story, error)
	// UpdatePages replaces the whole page sequence.
	UpdatePages(ctx context.Context, id uuid.UUID, pages []models.StoryPage) error
	// Publish sets is_published = true. Idempotent.
	Publish(ctx context.Context, id uuid.UUID) error
}

// ScrapbookRepository persists scrapbooks. ImageIDs order is meaningful and
// is stored and returned exactly as submitted.
type ScrapbookRepository interface {
	Create(ctx context.Context, scrapbook *models.Scrapbook) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Scrapbook, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Scrapbook, error)
	Update(ctx context.Context, scrapbook *models.Scrapbook) error
}

// ImageTransformationRepository records transform attempts.
type ImageTransformationRepository interface {
	Create(ctx context.Context, transformation *models.ImageTransformation) error
	ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.ImageTransformation, error)
}

// AssetRepository is the registry behind the asset store.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
}
