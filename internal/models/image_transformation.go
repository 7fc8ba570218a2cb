package models

import (
	"time"

	"github.com/google/uuid"
)

// TransformationStatus tracks the outcome of one transform request.
type TransformationStatus string

const (
	TransformationProcessing TransformationStatus = "processing"
	TransformationCompleted  TransformationStatus = "completed"
	TransformationFailed     TransformationStatus = "failed"
)

// ImageTransformation is the historical record of one style-transform
// request. The current integration is an identity transform: the transformed
// image id equals the original and the status is written as completed.
type ImageTransformation struct {
	ID                 uuid.UUID            `json:"id" db:"id"`
	OriginalImageID    uuid.UUID            `json:"original_image_id" db:"original_image_id"`
	TransformedImageID uuid.UUID            `json:"transformed_image_id" db:"transformed_image_id"`
	Style              CharacterStyle       `json:"style" db:"style"`
	UserID             uuid.UUID            `json:"user_id" db:"user_id"`
	Status             TransformationStatus `json:"status" db:"status"`
	CreatedAt          time.Time            `json:"created_at" db:"created_at"`
}

// TransformationWithURLs is a transformation record enriched with resolved
// URLs for both sides of the transform.
type TransformationWithURLs struct {
	ImageTransformation
	OriginalURL    string `json:"original_url"`
	TransformedURL string `json:"transformed_url"`
}
