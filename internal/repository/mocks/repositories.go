package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storybook-server/internal/models"
)

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}
func (m *CharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	args := m.Called(ctx, id)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}
func (m *CharacterRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, creatorID)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}
func (m *CharacterRepository) ListPublic(ctx context.Context) ([]models.Character, error) {
	args := m.Called(ctx)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}
func (m *CharacterRepository) Publish(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *CharacterRepository) UpdateTransformedImage(ctx context.Context, id, assetID uuid.UUID) error {
	args := m.Called(ctx, id, assetID)
	return args.Error(0)
}

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}
func (m *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	args := m.Called(ctx, id)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, authorID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryRepository) UpdatePages(ctx context.Context, id uuid.UUID, pages []models.StoryPage) error {
	args := m.Called(ctx, id, pages)
	return args.Error(0)
}
func (m *StoryRepository) Publish(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ScrapbookRepository
type ScrapbookRepository struct {
	mock.Mock
}

func (m *ScrapbookRepository) Create(ctx context.Context, scrapbook *models.Scrapbook) error {
	args := m.Called(ctx, scrapbook)
	return args.Error(0)
}
func (m *ScrapbookRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scrapbook, error) {
	args := m.Called(ctx, id)
	scrapbook, _ := args.Get(0).(*models.Scrapbook)
	return scrapbook, args.Error(1)
}
func (m *ScrapbookRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Scrapbook, error) {
	args := m.Called(ctx, creatorID)
	scrapbooks, _ := args.Get(0).([]models.Scrapbook)
	return scrapbooks, args.Error(1)
}
func (m *ScrapbookRepository) Update(ctx context.Context, scrapbook *models.Scrapbook) error {
	args := m.Called(ctx, scrapbook)
	return args.Error(0)
}

// Mock ImageTransformationRepository
type ImageTransformationRepository struct {
	mock.Mock
}

func (m *ImageTransformationRepository) Create(ctx context.Context, transformation *models.ImageTransformation) error {
	args := m.Called(ctx, transformation)
	return args.Error(0)
}
func (m *ImageTransformationRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.ImageTransformation, error) {
	args := m.Called(ctx, userID)
	transformations, _ := args.Get(0).([]models.ImageTransformation)
	return transformations, args.Error(1)
}

// Mock AssetRepository
type AssetRepository struct {
	mock.Mock
}

func (m *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *AssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(*models.Asset)
	return asset, args.Error(1)
}
