package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	stories := cat.List()
	require.Len(t, stories, 2)

	assert.Equal(t, "sample1", stories[0].ID)
	assert.Equal(t, "The Magic Forest Adventure", stories[0].Title)
	assert.Equal(t, "Ages 4-8", stories[0].AgeGroup)
	require.Len(t, stories[0].Pages, 3)
	assert.Equal(t, 1, stories[0].Pages[0].PageNumber)
	assert.NotEmpty(t, stories[0].Pages[0].DrawingPrompt)

	assert.Equal(t, "sample2", stories[1].ID)
	require.Len(t, stories[1].Pages, 15)
	// Pages come numbered contiguously from 1.
	for i, page := range stories[1].Pages {
		assert.Equal(t, i+1, page.PageNumber)
	}
}

func TestListReturnsCopy(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	first := cat.List()
	first[0].Title = "mutated"

	second := cat.List()
	assert.Equal(t, "The Magic Forest Adventure", second[0].Title)
}
