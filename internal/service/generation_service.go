package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/ai"
	"storybook-server/internal/models"
	"storybook-server/internal/repository"
	"storybook-server/internal/storage"
)

// stylePrompts maps each character style to its prompt template fragment.
// Unrecognized styles fall back to the cartoon fragment.
var stylePrompts = map[models.CharacterStyle]string{
	models.StyleCartoon:        "cartoon style, animated, colorful, Disney-like",
	models.StylePhotorealistic: "photorealistic, detailed, high quality, professional photography",
	models.StyleWatercolor:     "watercolor painting, soft colors, artistic, painted texture",
	models.StyleDigitalArt:     "digital art, modern illustration, vibrant colors, clean lines",
	models.StyleSketch:         "pencil sketch, hand-drawn, artistic, black and white or light colors",
}

const defaultStylePrompt = "cartoon style"

// GenerationService orchestrates the AI image-generation flow for characters.
type GenerationService interface {
	// GenerateCharacterImage runs the full flow: load character, build the
	// prompt, call the provider, fetch and store the result, and overwrite
	// the character's transformed image reference. A missing character or a
	// non-owner caller is a hard failure; every later failure is reported
	// softly as Success=false so the client can offer a retry.
	GenerateCharacterImage(ctx context.Context, callerID, characterID uuid.UUID) (*models.GenerationResult, error)
}

// Compile-time check to ensure generationServiceImpl implements GenerationService
var _ GenerationService = (*generationServiceImpl)(nil)

type generationServiceImpl struct {
	characterRepo repository.CharacterRepository
	generator     ai.ImageGenerator
	assetStore    storage.AssetStore
	fetchClient   *http.Client
	logger        *zap.Logger
}

// NewGenerationService creates a new GenerationService. fetchTimeout bounds
// the download of provider-hosted content.
func NewGenerationService(
	characterRepo repository.CharacterRepository,
	generator ai.ImageGenerator,
	assetStore storage.AssetStore,
	fetchTimeout time.Duration,
	logger *zap.Logger,
) GenerationService {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &generationServiceImpl{
		characterRepo: characterRepo,
		generator:     generator,
		assetStore:    assetStore,
		fetchClient:   &http.Client{Timeout: fetchTimeout},
		logger:        logger.Named("GenerationService"),
	}
}

// buildPrompt assembles the provider prompt from the character's style,
// description and name, with a fixed framing for children's storybooks.
func buildPrompt(character *models.Character) string {
	styleFragment, ok := stylePrompts[character.Style]
	if !ok {
		styleFragment = defaultStylePrompt
	}
	return fmt.Sprintf(
		"Create a %s image of a character: %s. The character's name is %s. Make it suitable for children's storybooks, friendly and engaging.",
		styleFragment, character.Description, character.Name,
	)
}

func (s *generationServiceImpl) GenerateCharacterImage(ctx context.Context, callerID, characterID uuid.UUID) (*models.GenerationResult, error) {
	log := s.logger.With(
		zap.String("characterID", characterID.String()),
		zap.String("callerID", callerID.String()),
	)

	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		// Missing character surfaces as a hard failure, unlike every
		// downstream error in this flow.
		return nil, err
	}
	if character.CreatorID != callerID {
		log.Warn("Generation requested by non-owner")
		return nil, models.ErrForbidden
	}

	prompt := buildPrompt(character)
	log.Info("Generating character image", zap.String("style", string(character.Style)))

	providerURL, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		log.Warn("Image generation failed", zap.Error(err))
		return softFailure(), nil
	}

	imageData, contentType, err := s.fetchImage(ctx, providerURL)
	if err != nil {
		log.Warn("Failed to fetch generated image", zap.Error(err))
		return softFailure(), nil
	}

	assetID, err := s.assetStore.Store(ctx, character.CreatorID, imageData, contentType)
	if err != nil {
		log.Error("Failed to store generated image", zap.Error(err))
		return softFailure(), nil
	}

	// Overwrites any prior value: regeneration is destructive and the last
	// concurrent writer wins.
	if err := s.characterRepo.UpdateTransformedImage(ctx, characterID, assetID); err != nil {
		log.Error("Failed to update character image reference", zap.Error(err))
		return softFailure(), nil
	}

	imageURL, err := s.assetStore.ResolveURL(ctx, assetID)
	if err != nil {
		log.Error("Failed to resolve stored image URL", zap.Error(err))
		return softFailure(), nil
	}

	log.Info("Character image generated", zap.String("assetID", assetID.String()))
	return &models.GenerationResult{
		Success:  true,
		Message:  "Character image generated successfully! ✨",
		ImageURL: imageURL,
	}, nil
}

// fetchImage downloads the provider-hosted image within the fetch timeout.
func (s *generationServiceImpl) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image fetch request: %w", err)
	}

	resp, err := s.fetchClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image fetch returned empty body")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return data, contentType, nil
}

func softFailure() *models.GenerationResult {
	return &models.GenerationResult{
		Success: false,
		Message: "Failed to generate character image. Please try again.",
	}
}
