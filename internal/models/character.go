package models

import (
	"time"

	"github.com/google/uuid"
)

// CharacterStyle is the art-style tag used both as a client choice and as a
// prompt-template key for image generation.
type CharacterStyle string

const (
	StyleCartoon        CharacterStyle = "cartoon"
	StylePhotorealistic CharacterStyle = "photorealistic"
	StyleWatercolor     CharacterStyle = "watercolor"
	StyleDigitalArt     CharacterStyle = "digital-art"
	StyleSketch         CharacterStyle = "sketch"
)

// Character is a storybook character owned by exactly one user.
// OriginalImageID and TransformedImageID are weak references into the asset
// store; the character does not own the blob lifecycle.
type Character struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	Name               string         `json:"name" db:"name"`
	Description        string         `json:"description" db:"description"`
	CreatorID          uuid.UUID      `json:"creator_id" db:"creator_id"`
	OriginalImageID    *uuid.UUID     `json:"original_image_id,omitempty" db:"original_image_id"`
	TransformedImageID *uuid.UUID     `json:"transformed_image_id,omitempty" db:"transformed_image_id"`
	Style              CharacterStyle `json:"style" db:"style"`
	IsPublic           bool           `json:"is_public" db:"is_public"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// CharacterWithURL is a character enriched with the resolved URL of its
// transformed image for list responses.
type CharacterWithURL struct {
	Character
	TransformedImageURL *string `json:"transformed_image_url,omitempty"`
}
