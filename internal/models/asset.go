package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset is the registry row behind one stored blob. Blobs persist
// independently of the entities referencing them and may be referenced by
// several entities at once.
type Asset struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UploadChannel is a one-time direct-upload target. The client PUTs the raw
// bytes to URL before ExpiresAt; the token is single use.
type UploadChannel struct {
	Token     uuid.UUID `json:"token"`
	URL       string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
