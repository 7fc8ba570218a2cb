package models

import (
	"time"

	"github.com/google/uuid"
)

// ScrapbookLayout is a rendering hint only; it is not enforced structurally.
type ScrapbookLayout string

const (
	LayoutGrid     ScrapbookLayout = "grid"
	LayoutCollage  ScrapbookLayout = "collage"
	LayoutTimeline ScrapbookLayout = "timeline"
	LayoutMagazine ScrapbookLayout = "magazine"
)

// Scrapbook is an ordered collection of asset references. ImageIDs carry the
// display order and are preserved exactly as submitted, without sorting or
// deduplication.
type Scrapbook struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description *string         `json:"description,omitempty" db:"description"`
	CreatorID   uuid.UUID       `json:"creator_id" db:"creator_id"`
	ImageIDs    []uuid.UUID     `json:"image_ids" db:"image_ids"`
	Layout      ScrapbookLayout `json:"layout" db:"layout"`
	IsPublished bool            `json:"is_published" db:"is_published"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ScrapbookImage is one resolved entry of a scrapbook's image sequence.
type ScrapbookImage struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// ScrapbookDetail is a scrapbook with its image ids resolved to URLs,
// preserving the stored order.
type ScrapbookDetail struct {
	Scrapbook
	Images []ScrapbookImage `json:"images"`
}
