package models

import (
	"time"

	"github.com/google/uuid"
)

// StoryType distinguishes user-authored stories from copies of premade ones.
type StoryType string

const (
	StoryTypeCustom  StoryType = "custom"
	StoryTypePremade StoryType = "premade"
)

// StoryPage is one page of a story. PageNumber values are contiguous
// starting at 1 for pages managed through the add/remove flow; directly
// submitted arrays are stored as-is.
type StoryPage struct {
	PageNumber         int         `json:"pageNumber"`
	Text               string      `json:"text"`
	OriginalImageID    *uuid.UUID  `json:"originalImageId,omitempty"`
	TransformedImageID *uuid.UUID  `json:"transformedImageId,omitempty"`
	CharacterIDs       []uuid.UUID `json:"characterIds,omitempty"`
}

// Story is an illustrated story owned by its author. Pages are stored as an
// ordered JSONB array.
type Story struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description,omitempty" db:"description"`
	Type        StoryType   `json:"type" db:"type"`
	AuthorID    uuid.UUID   `json:"author_id" db:"author_id"`
	Pages       []StoryPage `json:"pages" db:"pages"`
	IsPublished bool        `json:"is_published" db:"is_published"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// PremadePage is one page of a premade catalog story. Premade pages carry a
// drawing prompt instead of image references.
type PremadePage struct {
	PageNumber    int    `json:"pageNumber"`
	Text          string `json:"text"`
	DrawingPrompt string `json:"drawingPrompt"`
}

// PremadeStory is a ready-made story from the static catalog.
type PremadeStory struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Pages       []PremadePage `json:"pages"`
	AgeGroup    string        `json:"ageGroup"`
	Category    string        `json:"category"`
}
