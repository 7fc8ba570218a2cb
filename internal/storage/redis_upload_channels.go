package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// Compile-time check to ensure redisUploadChannelStore implements UploadChannelStore
var _ UploadChannelStore = (*redisUploadChannelStore)(nil)

const uploadTokenKeyPrefix = "upload_token:"

// redisUploadChannelStore keeps one-time upload tokens in Redis with a TTL.
// The value is the owner id the token was issued to.
type redisUploadChannelStore struct {
	client        *redis.Client
	publicBaseURL string
	ttl           time.Duration
	logger        *zap.Logger
}

// NewRedisUploadChannelStore creates a Redis-backed UploadChannelStore.
func NewRedisUploadChannelStore(client *redis.Client, publicBaseURL string, ttl time.Duration, logger *zap.Logger) UploadChannelStore {
	return &redisUploadChannelStore{
		client:        client,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		ttl:           ttl,
		logger:        logger.Named("RedisUploadChannels"),
	}
}

// Create issues a one-time upload token with the configured TTL.
func (s *redisUploadChannelStore) Create(ctx context.Context, ownerID uuid.UUID) (*models.UploadChannel, error) {
	token := uuid.New()
	key := uploadTokenKeyPrefix + token.String()

	if err := s.client.Set(ctx, key, ownerID.String(), s.ttl).Err(); err != nil {
		s.logger.Error("Failed to store upload token", zap.String("ownerID", ownerID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to store upload token: %w", err)
	}

	channel := &models.UploadChannel{
		Token:     token,
		URL:       s.publicBaseURL + "/uploads/" + token.String(),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	s.logger.Debug("Upload channel created",
		zap.String("ownerID", ownerID.String()),
		zap.Time("expiresAt", channel.ExpiresAt),
	)
	return channel, nil
}

// Consume redeems a token, deleting it atomically so it cannot be reused.
func (s *redisUploadChannelStore) Consume(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	key := uploadTokenKeyPrefix + token.String()

	value, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.Warn("Upload token missing or already used", zap.String("token", token.String()))
			return uuid.Nil, models.ErrUploadTokenInvalid
		}
		s.logger.Error("Failed to redeem upload token", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to redeem upload token: %w", err)
	}

	ownerID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed owner id", models.ErrUploadTokenInvalid)
	}
	return ownerID, nil
}
