package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	repomocks "storybook-server/internal/repository/mocks"
	storagemocks "storybook-server/internal/storage/mocks"
)

func newImageFixture(t *testing.T) (*repomocks.ImageTransformationRepository, *storagemocks.AssetStore, *storagemocks.UploadChannelStore, ImageService) {
	t.Helper()
	transformationRepo := new(repomocks.ImageTransformationRepository)
	assetStore := new(storagemocks.AssetStore)
	uploadChannels := new(storagemocks.UploadChannelStore)
	svc := NewImageService(transformationRepo, assetStore, uploadChannels, zap.NewNop())
	return transformationRepo, assetStore, uploadChannels, svc
}

func TestImageService_CreateUploadChannel(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	_, _, uploadChannels, svc := newImageFixture(t)
	token := uuid.New()
	uploadChannels.On("Create", ctx, callerID).Return(&models.UploadChannel{
		Token:     token,
		URL:       "http://assets.local/uploads/" + token.String(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil)

	channel, err := svc.CreateUploadChannel(ctx, callerID)
	require.NoError(t, err)
	assert.Equal(t, token, channel.Token)
	assert.Contains(t, channel.URL, token.String())
}

func TestImageService_HandleDirectUpload(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("consumes the token and stores the bytes", func(t *testing.T) {
		_, assetStore, uploadChannels, svc := newImageFixture(t)
		token := uuid.New()
		assetID := uuid.New()
		data := []byte("image-bytes")

		uploadChannels.On("Consume", ctx, token).Return(ownerID, nil)
		assetStore.On("Store", ctx, ownerID, data, "image/jpeg").Return(assetID, nil)

		got, err := svc.HandleDirectUpload(ctx, token.String(), data, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, assetID, got)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, assetStore, _, svc := newImageFixture(t)

		_, err := svc.HandleDirectUpload(ctx, "not-a-uuid", []byte("x"), "image/png")
		assert.ErrorIs(t, err, models.ErrUploadTokenInvalid)
		assetStore.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("spent token", func(t *testing.T) {
		_, assetStore, uploadChannels, svc := newImageFixture(t)
		token := uuid.New()
		uploadChannels.On("Consume", ctx, token).Return(uuid.Nil, models.ErrUploadTokenInvalid)

		_, err := svc.HandleDirectUpload(ctx, token.String(), []byte("x"), "image/png")
		assert.ErrorIs(t, err, models.ErrUploadTokenInvalid)
		assetStore.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty body", func(t *testing.T) {
		_, _, uploadChannels, svc := newImageFixture(t)

		_, err := svc.HandleDirectUpload(ctx, uuid.New().String(), nil, "image/png")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		uploadChannels.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	})
}

func TestImageService_Transform(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	t.Run("records a completed identity transform", func(t *testing.T) {
		transformationRepo, assetStore, _, svc := newImageFixture(t)
		imageID := uuid.New()
		assetStore.On("ResolveURL", ctx, imageID).Return("http://assets.local/orig.png", nil)
		transformationRepo.On("Create", ctx, mock.MatchedBy(func(tr *models.ImageTransformation) bool {
			return tr.OriginalImageID == imageID &&
				tr.TransformedImageID == imageID &&
				tr.Status == models.TransformationCompleted &&
				tr.UserID == callerID
		})).Return(nil)

		result, err := svc.Transform(ctx, callerID, imageID, models.StyleSketch)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "http://assets.local/orig.png", result.TransformedImageURL)
		assert.Contains(t, result.Message, "sketch")
		transformationRepo.AssertExpectations(t)
	})

	t.Run("unknown asset id", func(t *testing.T) {
		transformationRepo, assetStore, _, svc := newImageFixture(t)
		imageID := uuid.New()
		assetStore.On("ResolveURL", ctx, imageID).Return("", models.ErrAssetNotFound)

		_, err := svc.Transform(ctx, callerID, imageID, models.StyleCartoon)
		assert.ErrorIs(t, err, models.ErrAssetNotFound)
		transformationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestImageService_ListTransformed(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	transformationRepo, assetStore, _, svc := newImageFixture(t)
	imageID := uuid.New()
	transformationRepo.On("ListCompletedByUser", ctx, callerID).Return([]models.ImageTransformation{
		{ID: uuid.New(), OriginalImageID: imageID, TransformedImageID: imageID, Status: models.TransformationCompleted},
	}, nil)
	assetStore.On("ResolveURL", ctx, imageID).Return("http://assets.local/orig.png", nil)

	out, err := svc.ListTransformed(ctx, callerID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "http://assets.local/orig.png", out[0].OriginalURL)
	assert.Equal(t, "http://assets.local/orig.png", out[0].TransformedURL)
}
