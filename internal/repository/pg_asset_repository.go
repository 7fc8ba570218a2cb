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

// Compile-time check to ensure pgAssetRepository implements AssetRepository
var _ AssetRepository = (*pgAssetRepository)(nil)

const (
	createAssetQuery = `
		INSERT INTO assets (id, owner_id, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	getAssetByIDQuery = `SELECT id, owner_id, content_type, size_bytes, created_at FROM assets WHERE id = $1`
)

type pgAssetRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAssetRepository creates a PostgreSQL-backed AssetRepository.
func NewPgAssetRepository(db DBTX, logger *zap.Logger) AssetRepository {
	return &pgAssetRepository{
		db:     db,
		logger: logger.Named("PgAssetRepo"),
	}
}

// Create registers a stored blob.
func (r *pgAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	asset.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx, createAssetQuery,
		asset.ID,
		asset.OwnerID,
		asset.ContentType,
		asset.SizeBytes,
		asset.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to register asset", zap.String("assetID", asset.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to register asset: %w", err)
	}

	r.logger.Debug("Asset registered",
		zap.String("assetID", asset.ID.String()),
		zap.Int64("sizeBytes", asset.SizeBytes),
	)
	return nil
}

// GetByID returns the registry row for an asset id, or ErrAssetNotFound.
func (r *pgAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := pgxscan.Get(ctx, r.db, &asset, getAssetByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrAssetNotFound
		}
		r.logger.Error("Failed to get asset", zap.String("assetID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get asset %s: %w", id, err)
	}
	return &asset, nil
}
