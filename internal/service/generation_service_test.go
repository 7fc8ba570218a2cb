package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	aimocks "storybook-server/internal/ai/mocks"
	"storybook-server/internal/models"
	repomocks "storybook-server/internal/repository/mocks"
	storagemocks "storybook-server/internal/storage/mocks"
)

func newGenerationFixture(t *testing.T) (*repomocks.CharacterRepository, *aimocks.ImageGenerator, *storagemocks.AssetStore, GenerationService) {
	t.Helper()
	characterRepo := new(repomocks.CharacterRepository)
	generator := new(aimocks.ImageGenerator)
	assetStore := new(storagemocks.AssetStore)
	svc := NewGenerationService(characterRepo, generator, assetStore, 5*time.Second, zap.NewNop())
	return characterRepo, generator, assetStore, svc
}

func TestGenerationService_GenerateCharacterImage(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer imageServer.Close()

	t.Run("success updates the character image and returns the stored URL", func(t *testing.T) {
		characterRepo, generator, assetStore, svc := newGenerationFixture(t)
		character := &models.Character{
			ID:          uuid.New(),
			Name:        "Luna",
			Description: "a fairy with sparkly wings",
			CreatorID:   ownerID,
			Style:       models.StyleWatercolor,
		}
		assetID := uuid.New()

		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)
		generator.On("GenerateImage", ctx, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "watercolor painting") &&
				strings.Contains(prompt, "The character's name is Luna") &&
				strings.Contains(prompt, "a fairy with sparkly wings")
		})).Return(imageServer.URL, nil)
		assetStore.On("Store", ctx, ownerID, []byte("png-bytes"), "image/png").Return(assetID, nil)
		characterRepo.On("UpdateTransformedImage", ctx, character.ID, assetID).Return(nil)
		assetStore.On("ResolveURL", ctx, assetID).Return("http://assets.local/"+assetID.String()+".png", nil)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "http://assets.local/"+assetID.String()+".png", result.ImageURL)
		characterRepo.AssertExpectations(t)
		generator.AssertExpectations(t)
		assetStore.AssertExpectations(t)
	})

	t.Run("unknown style falls back to the cartoon prompt", func(t *testing.T) {
		characterRepo, generator, assetStore, svc := newGenerationFixture(t)
		character := &models.Character{
			ID:          uuid.New(),
			Name:        "Robo",
			Description: "a friendly robot",
			CreatorID:   ownerID,
			Style:       models.CharacterStyle("vaporwave"),
		}
		assetID := uuid.New()

		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)
		generator.On("GenerateImage", ctx, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "cartoon style")
		})).Return(imageServer.URL, nil)
		assetStore.On("Store", ctx, ownerID, mock.Anything, "image/png").Return(assetID, nil)
		characterRepo.On("UpdateTransformedImage", ctx, character.ID, assetID).Return(nil)
		assetStore.On("ResolveURL", ctx, assetID).Return("http://assets.local/x.png", nil)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		require.NoError(t, err)
		assert.True(t, result.Success)
		generator.AssertExpectations(t)
	})

	t.Run("missing character is a hard failure", func(t *testing.T) {
		characterRepo, _, _, svc := newGenerationFixture(t)
		characterID := uuid.New()
		characterRepo.On("GetByID", ctx, characterID).Return(nil, models.ErrNotFound)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, characterID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("non-owner is a hard failure", func(t *testing.T) {
		characterRepo, generator, _, svc := newGenerationFixture(t)
		character := &models.Character{ID: uuid.New(), CreatorID: uuid.New(), Style: models.StyleCartoon}
		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.Nil(t, result)
		generator.AssertNotCalled(t, "GenerateImage", mock.Anything, mock.Anything)
	})

	t.Run("provider failure is soft and leaves the character untouched", func(t *testing.T) {
		characterRepo, generator, assetStore, svc := newGenerationFixture(t)
		character := &models.Character{ID: uuid.New(), Name: "Luna", Description: "a fairy", CreatorID: ownerID, Style: models.StyleCartoon}

		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)
		generator.On("GenerateImage", ctx, mock.Anything).Return("", models.ErrNoImageGenerated)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Message)
		characterRepo.AssertNotCalled(t, "UpdateTransformedImage", mock.Anything, mock.Anything, mock.Anything)
		assetStore.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetch failure is soft", func(t *testing.T) {
		characterRepo, generator, _, svc := newGenerationFixture(t)
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer failing.Close()

		character := &models.Character{ID: uuid.New(), Name: "Luna", Description: "a fairy", CreatorID: ownerID, Style: models.StyleCartoon}
		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)
		generator.On("GenerateImage", ctx, mock.Anything).Return(failing.URL, nil)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		require.NoError(t, err)
		assert.False(t, result.Success)
		characterRepo.AssertNotCalled(t, "UpdateTransformedImage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is soft", func(t *testing.T) {
		characterRepo, generator, assetStore, svc := newGenerationFixture(t)
		character := &models.Character{ID: uuid.New(), Name: "Luna", Description: "a fairy", CreatorID: ownerID, Style: models.StyleCartoon}

		characterRepo.On("GetByID", ctx, character.ID).Return(character, nil)
		generator.On("GenerateImage", ctx, mock.Anything).Return(imageServer.URL, nil)
		assetStore.On("Store", ctx, ownerID, mock.Anything, "image/png").Return(uuid.Nil, assert.AnError)

		result, err := svc.GenerateCharacterImage(ctx, ownerID, character.ID)
		require.NoError(t, err)
		assert.False(t, result.Success)
		characterRepo.AssertNotCalled(t, "UpdateTransformedImage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBuildPrompt(t *testing.T) {
	character := &models.Character{
		Name:        "Luna",
		Description: "a fairy with sparkly wings",
		Style:       models.StyleWatercolor,
	}
	prompt := buildPrompt(character)
	assert.Equal(t,
		"Create a watercolor painting, soft colors, artistic, painted texture image of a character: a fairy with sparkly wings. The character's name is Luna. Make it suitable for children's storybooks, friendly and engaging.",
		prompt)
}
