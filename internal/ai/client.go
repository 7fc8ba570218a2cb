// Package ai wraps the external image-generation provider behind a small
// interface. The provider gives no determinism or content guarantees; empty
// result lists are a normal failure mode and are mapped to a sentinel error.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"storybook-server/internal/models"
)

// ImageGenerator produces one image for a prompt and returns the
// provider-hosted URL of the result.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Config holds the provider client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Compile-time check to ensure Client implements ImageGenerator
var _ ImageGenerator = (*Client)(nil)

// Client is an OpenAI-compatible image generation client.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a provider client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("image provider API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		logger:  logger.Named("ImageProvider"),
	}, nil
}

// GenerateImage requests exactly one square image for the prompt. The call
// is bounded by the configured timeout; the provider URL is short-lived and
// must be fetched promptly by the caller.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("Requesting image generation", zap.String("model", c.model), zap.Int("promptLen", len(prompt)))

	resp, err := c.client.CreateImage(ctx, openai.ImageRequest{
		Model:          c.model,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		c.logger.Error("Image generation request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		c.logger.Warn("Provider returned no image")
		return "", models.ErrNoImageGenerated
	}

	return resp.Data[0].URL, nil
}
