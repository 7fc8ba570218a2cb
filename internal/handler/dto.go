package handler

import (
	"github.com/google/uuid"

	"storybook-server/internal/models"
)

// --- Request payloads ---

type createCharacterRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description" binding:"required"`
	Style           string     `json:"style"`
	OriginalImageID *uuid.UUID `json:"originalImageId"`
	IsPublic        bool       `json:"isPublic"`
}

type createStoryRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description *string            `json:"description"`
	Type        string             `json:"type"`
	Pages       []models.StoryPage `json:"pages"`
}

type addStoryPageRequest struct {
	Text               string      `json:"text"`
	OriginalImageID    *uuid.UUID  `json:"originalImageId"`
	TransformedImageID *uuid.UUID  `json:"transformedImageId"`
	CharacterIDs       []uuid.UUID `json:"characterIds"`
}

type scrapbookRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description *string     `json:"description"`
	ImageIDs    []uuid.UUID `json:"imageIds" binding:"required"`
	Layout      string      `json:"layout"`
}

type transformImageRequest struct {
	ImageID uuid.UUID `json:"imageId" binding:"required"`
	Style   string    `json:"style" binding:"required"`
}

// --- Response payloads ---

type uploadResponse struct {
	ImageID uuid.UUID `json:"image_id"`
}

type imageURLResponse struct {
	URL string `json:"url"`
}
