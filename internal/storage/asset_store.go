// Package storage implements the asset store: an opaque blob store addressed
// by asset id, plus one-time upload channels for direct client uploads.
package storage

import (
	"context"

	"github.com/google/uuid"

	"storybook-server/internal/models"
)

// AssetStore stores raw image bytes and resolves asset ids to fetchable
// URLs. Asset ids are weak references: callers never manage blob deletion.
type AssetStore interface {
	// Store saves the blob, registers it and returns the new asset id.
	Store(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (uuid.UUID, error)
	// ResolveURL returns a fetchable URL for the asset, or
	// models.ErrAssetNotFound when the id does not resolve.
	ResolveURL(ctx context.Context, id uuid.UUID) (string, error)
}

// UploadChannelStore issues and redeems one-time direct-upload tokens.
// The token is the only credential the upload endpoint checks.
type UploadChannelStore interface {
	// Create issues a new upload channel for the given owner.
	Create(ctx context.Context, ownerID uuid.UUID) (*models.UploadChannel, error)
	// Consume redeems a token exactly once and returns the owner it was
	// issued to. A second redeem fails with models.ErrUploadTokenInvalid.
	Consume(ctx context.Context, token uuid.UUID) (uuid.UUID, error)
}
