package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/repository"
	"storybook-server/internal/storage"
)

// CreateCharacterInput is the validated payload for character creation.
type CreateCharacterInput struct {
	Name            string
	Description     string
	Style           models.CharacterStyle
	OriginalImageID *uuid.UUID
	IsPublic        bool
}

// CharacterService manages storybook characters.
type CharacterService interface {
	// Create persists the character. When no original image is supplied it
	// triggers exactly one follow-up generation attempt; the creation itself
	// succeeds even if that attempt fails.
	Create(ctx context.Context, creatorID uuid.UUID, input CreateCharacterInput) (*models.Character, error)
	// ListMine returns the caller's characters with transformed image URLs
	// resolved where present.
	ListMine(ctx context.Context, callerID uuid.UUID) ([]models.CharacterWithURL, error)
	ListPublic(ctx context.Context) ([]models.Character, error)
	// Publish marks the character public. Owner-only, idempotent.
	Publish(ctx context.Context, callerID, characterID uuid.UUID) error
}

// Compile-time check to ensure characterServiceImpl implements CharacterService
var _ CharacterService = (*characterServiceImpl)(nil)

type characterServiceImpl struct {
	characterRepo repository.CharacterRepository
	generation    GenerationService
	assetStore    storage.AssetStore
	logger        *zap.Logger
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(
	characterRepo repository.CharacterRepository,
	generation GenerationService,
	assetStore storage.AssetStore,
	logger *zap.Logger,
) CharacterService {
	return &characterServiceImpl{
		characterRepo: characterRepo,
		generation:    generation,
		assetStore:    assetStore,
		logger:        logger.Named("CharacterService"),
	}
}

func (s *characterServiceImpl) Create(ctx context.Context, creatorID uuid.UUID, input CreateCharacterInput) (*models.Character, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: character name cannot be empty", models.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: character description cannot be empty", models.ErrInvalidInput)
	}
	// Unknown style strings are stored as-is; generation falls back to the
	// cartoon prompt for them.
	if input.Style == "" {
		input.Style = models.StyleCartoon
	}

	character := &models.Character{
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		CreatorID:       creatorID,
		OriginalImageID: input.OriginalImageID,
		Style:           input.Style,
		IsPublic:        input.IsPublic,
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		s.logger.Error("Failed to create character", zap.Error(err), zap.String("creatorID", creatorID.String()))
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	log := s.logger.With(zap.String("characterID", character.ID.String()))
	log.Info("Character created", zap.String("style", string(character.Style)))

	// Exactly one attempt, and only when the client did not bring an image.
	// A failed attempt leaves the character without a transformed image.
	if input.OriginalImageID == nil {
		result, err := s.generation.GenerateCharacterImage(ctx, creatorID, character.ID)
		if err != nil {
			log.Warn("Initial image generation errored", zap.Error(err))
		} else if !result.Success {
			log.Warn("Initial image generation did not produce an image", zap.String("message", result.Message))
		}
		// Re-read so the response carries the transformed image reference
		// when generation succeeded.
		if updated, getErr := s.characterRepo.GetByID(ctx, character.ID); getErr == nil {
			character = updated
		}
	}

	return character, nil
}

func (s *characterServiceImpl) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.CharacterWithURL, error) {
	characters, err := s.characterRepo.ListByCreator(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	out := make([]models.CharacterWithURL, 0, len(characters))
	for _, c := range characters {
		enriched := models.CharacterWithURL{Character: c}
		if c.TransformedImageID != nil {
			url, resolveErr := s.assetStore.ResolveURL(ctx, *c.TransformedImageID)
			if resolveErr != nil {
				// Dangling reference: list the character without a URL
				// instead of failing the whole listing.
				s.logger.Warn("Failed to resolve character image URL",
					zap.String("characterID", c.ID.String()), zap.Error(resolveErr))
			} else {
				enriched.TransformedImageURL = &url
			}
		}
		out = append(out, enriched)
	}
	return out, nil
}

func (s *characterServiceImpl) ListPublic(ctx context.Context) ([]models.Character, error) {
	characters, err := s.characterRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public characters: %w", err)
	}
	return characters, nil
}

func (s *characterServiceImpl) Publish(ctx context.Context, callerID, characterID uuid.UUID) error {
	character, err := s.characterRepo.GetByID(ctx, characterID)
	if err != nil {
		return err
	}
	if character.CreatorID != callerID {
		s.logger.Warn("Publish requested by non-owner",
			zap.String("characterID", characterID.String()),
			zap.String("callerID", callerID.String()))
		return models.ErrForbidden
	}
	if err := s.characterRepo.Publish(ctx, characterID); err != nil {
		return fmt.Errorf("failed to publish character: %w", err)
	}
	s.logger.Info("Character published", zap.String("characterID", characterID.String()))
	return nil
}
