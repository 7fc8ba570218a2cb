// Package catalog serves the premade-story catalog. The catalog is static
// content shipped with the binary, not a queryable store; an external
// content service could supply it instead.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"storybook-server/internal/models"
)

//go:embed premade_stories.json
var premadeStoriesJSON []byte

// Catalog holds the decoded premade stories.
type Catalog struct {
	stories []models.PremadeStory
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	var stories []models.PremadeStory
	if err := json.Unmarshal(premadeStoriesJSON, &stories); err != nil {
		return nil, fmt.Errorf("failed to decode premade story catalog: %w", err)
	}
	return &Catalog{stories: stories}, nil
}

// List returns all premade stories in catalog order.
func (c *Catalog) List() []models.PremadeStory {
	out := make([]models.PremadeStory, len(c.stories))
	copy(out, c.stories)
	return out
}
