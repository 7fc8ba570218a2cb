package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storybook-server/internal/models"
)

// Mock AssetStore
type AssetStore struct {
	mock.Mock
}

func (m *AssetStore) Store(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, data, contentType)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}
func (m *AssetStore) ResolveURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// Mock UploadChannelStore
type UploadChannelStore struct {
	mock.Mock
}

func (m *UploadChannelStore) Create(ctx context.Context, ownerID uuid.UUID) (*models.UploadChannel, error) {
	args := m.Called(ctx, ownerID)
	channel, _ := args.Get(0).(*models.UploadChannel)
	return channel, args.Error(1)
}
func (m *UploadChannelStore) Consume(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	ownerID, _ := args.Get(0).(uuid.UUID)
	return ownerID, args.Error(1)
}
