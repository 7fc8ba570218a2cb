package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storybook-server/internal/models"
	"storybook-server/internal/service"
)

// Mock GenerationService
type GenerationService struct {
	mock.Mock
}

func (m *GenerationService) GenerateCharacterImage(ctx context.Context, callerID, characterID uuid.UUID) (*models.GenerationResult, error) {
	args := m.Called(ctx, callerID, characterID)
	result, _ := args.Get(0).(*models.GenerationResult)
	return result, args.Error(1)
}

// Mock CharacterService
type CharacterService struct {
	mock.Mock
}

func (m *CharacterService) Create(ctx context.Context, creatorID uuid.UUID, input service.CreateCharacterInput) (*models.Character, error) {
	args := m.Called(ctx, creatorID, input)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}
func (m *CharacterService) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.CharacterWithURL, error) {
	args := m.Called(ctx, callerID)
	characters, _ := args.Get(0).([]models.CharacterWithURL)
	return characters, args.Error(1)
}
func (m *CharacterService) ListPublic(ctx context.Context) ([]models.Character, error) {
	args := m.Called(ctx)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}
func (m *CharacterService) Publish(ctx context.Context, callerID, characterID uuid.UUID) error {
	args := m.Called(ctx, callerID, characterID)
	return args.Error(0)
}

// Mock StoryService
type StoryService struct {
	mock.Mock
}

func (m *StoryService) Create(ctx context.Context, authorID uuid.UUID, input service.CreateStoryInput) (*models.Story, error) {
	args := m.Called(ctx, authorID, input)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryService) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Story, error) {
	args := m.Called(ctx, callerID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}
func (m *StoryService) ListPremade(ctx context.Context) ([]models.PremadeStory, error) {
	args := m.Called(ctx)
	stories, _ := args.Get(0).([]models.PremadeStory)
	return stories, args.Error(1)
}
func (m *StoryService) Publish(ctx context.Context, callerID, storyID uuid.UUID) error {
	args := m.Called(ctx, callerID, storyID)
	return args.Error(0)
}
func (m *StoryService) AddPage(ctx context.Context, callerID, storyID uuid.UUID, input service.AddPageInput) (*models.Story, error) {
	args := m.Called(ctx, callerID, storyID, input)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryService) RemovePage(ctx context.Context, callerID, storyID uuid.UUID, pageNumber int) (*models.Story, error) {
	args := m.Called(ctx, callerID, storyID, pageNumber)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}
func (m *StoryService) GeneratePrintURL(ctx context.Context, callerID, storyID uuid.UUID) (*models.PrintResult, error) {
	args := m.Called(ctx, callerID, storyID)
	result, _ := args.Get(0).(*models.PrintResult)
	return result, args.Error(1)
}

// Mock ScrapbookService
type ScrapbookService struct {
	mock.Mock
}

func (m *ScrapbookService) Create(ctx context.Context, creatorID uuid.UUID, input service.CreateScrapbookInput) (*models.Scrapbook, error) {
	args := m.Called(ctx, creatorID, input)
	scrapbook, _ := args.Get(0).(*models.Scrapbook)
	return scrapbook, args.Error(1)
}
func (m *ScrapbookService) Update(ctx context.Context, callerID, scrapbookID uuid.UUID, input service.UpdateScrapbookInput) (*models.Scrapbook, error) {
	args := m.Called(ctx, callerID, scrapbookID, input)
	scrapbook, _ := args.Get(0).(*models.Scrapbook)
	return scrapbook, args.Error(1)
}
func (m *ScrapbookService) ListMine(ctx context.Context, callerID uuid.UUID) ([]models.Scrapbook, error) {
	args := m.Called(ctx, callerID)
	scrapbooks, _ := args.Get(0).([]models.Scrapbook)
	return scrapbooks, args.Error(1)
}
func (m *ScrapbookService) Get(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.ScrapbookDetail, error) {
	args := m.Called(ctx, callerID, scrapbookID)
	detail, _ := args.Get(0).(*models.ScrapbookDetail)
	return detail, args.Error(1)
}
func (m *ScrapbookService) GeneratePrintURL(ctx context.Context, callerID, scrapbookID uuid.UUID) (*models.PrintResult, error) {
	args := m.Called(ctx, callerID, scrapbookID)
	result, _ := args.Get(0).(*models.PrintResult)
	return result, args.Error(1)
}

// Mock ImageService
type ImageService struct {
	mock.Mock
}

func (m *ImageService) CreateUploadChannel(ctx context.Context, callerID uuid.UUID) (*models.UploadChannel, error) {
	args := m.Called(ctx, callerID)
	channel, _ := args.Get(0).(*models.UploadChannel)
	return channel, args.Error(1)
}
func (m *ImageService) HandleDirectUpload(ctx context.Context, token string, data []byte, contentType string) (uuid.UUID, error) {
	args := m.Called(ctx, token, data, contentType)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *ImageService) Transform(ctx context.Context, callerID, originalImageID uuid.UUID, style models.CharacterStyle) (*models.TransformResult, error) {
	args := m.Called(ctx, callerID, originalImageID, style)
	result, _ := args.Get(0).(*models.TransformResult)
	return result, args.Error(1)
}
func (m *ImageService) ListTransformed(ctx context.Context, callerID uuid.UUID) ([]models.TransformationWithURLs, error) {
	args := m.Called(ctx, callerID)
	transformations, _ := args.Get(0).([]models.TransformationWithURLs)
	return transformations, args.Error(1)
}
func (m *ImageService) ResolveImageURL(ctx context.Context, imageID uuid.UUID) (string, error) {
	args := m.Called(ctx, imageID)
	return args.String(0), args.Error(1)
}

// Mock ExportService
type ExportService struct {
	mock.Mock
}

func (m *ExportService) ExportStory(ctx context.Context, callerID, storyID uuid.UUID) (string, []byte, error) {
	args := m.Called(ctx, callerID, storyID)
	data, _ := args.Get(1).([]byte)
	return args.String(0), data, args.Error(2)
}
