package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	repomocks "storybook-server/internal/repository/mocks"
)

func TestDiskAssetStore_Store(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("writes the blob and registers it", func(t *testing.T) {
		dir := t.TempDir()
		assets := new(repomocks.AssetRepository)
		store, err := NewDiskAssetStore(assets, dir, "http://assets.local", zap.NewNop())
		require.NoError(t, err)

		var registered *models.Asset
		assets.On("Create", ctx, mock.MatchedBy(func(a *models.Asset) bool {
			registered = a
			return a.OwnerID == ownerID && a.ContentType == "image/png" && a.SizeBytes == 9
		})).Return(nil)

		id, err := store.Store(ctx, ownerID, []byte("png-bytes"), "image/png")
		require.NoError(t, err)
		require.Equal(t, registered.ID, id)

		data, err := os.ReadFile(filepath.Join(dir, id.String()+".png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("removes the file when registration fails", func(t *testing.T) {
		dir := t.TempDir()
		assets := new(repomocks.AssetRepository)
		store, err := NewDiskAssetStore(assets, dir, "http://assets.local", zap.NewNop())
		require.NoError(t, err)

		assets.On("Create", ctx, mock.Anything).Return(assert.AnError)

		_, err = store.Store(ctx, ownerID, []byte("png-bytes"), "image/png")
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects empty blobs", func(t *testing.T) {
		dir := t.TempDir()
		assets := new(repomocks.AssetRepository)
		store, err := NewDiskAssetStore(assets, dir, "http://assets.local", zap.NewNop())
		require.NoError(t, err)

		_, err = store.Store(ctx, ownerID, nil, "image/png")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestDiskAssetStore_ResolveURL(t *testing.T) {
	ctx := context.Background()

	t.Run("registered asset", func(t *testing.T) {
		assets := new(repomocks.AssetRepository)
		store, err := NewDiskAssetStore(assets, t.TempDir(), "http://assets.local/", zap.NewNop())
		require.NoError(t, err)

		id := uuid.New()
		assets.On("GetByID", ctx, id).Return(&models.Asset{ID: id, ContentType: "image/jpeg"}, nil)

		url, err := store.ResolveURL(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "http://assets.local/"+id.String()+".jpg", url)
	})

	t.Run("unknown asset", func(t *testing.T) {
		assets := new(repomocks.AssetRepository)
		store, err := NewDiskAssetStore(assets, t.TempDir(), "http://assets.local", zap.NewNop())
		require.NoError(t, err)

		id := uuid.New()
		assets.On("GetByID", ctx, id).Return(nil, models.ErrAssetNotFound)

		_, err = store.ResolveURL(ctx, id)
		assert.ErrorIs(t, err, models.ErrAssetNotFound)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".bin", extensionFor("application/octet-stream"))
}
