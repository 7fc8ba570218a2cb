// Package handler exposes the storybook API over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storybook-server/internal/auth"
	"storybook-server/internal/models"
	"storybook-server/internal/service"
)

const userIDKey = "user_id"

// StorybookHandler handles HTTP requests for the storybook API.
type StorybookHandler struct {
	characters service.CharacterService
	stories    service.StoryService
	scrapbooks service.ScrapbookService
	images     service.ImageService
	generation service.GenerationService
	export     service.ExportService
	verifier   *auth.JWTVerifier
	maxUpload  int64
	logger     *zap.Logger
}

// NewStorybookHandler creates a new StorybookHandler.
func NewStorybookHandler(
	characters service.CharacterService,
	stories service.StoryService,
	scrapbooks service.ScrapbookService,
	images service.ImageService,
	generation service.GenerationService,
	export service.ExportService,
	verifier *auth.JWTVerifier,
	maxUpload int64,
	logger *zap.Logger,
) *StorybookHandler {
	return &StorybookHandler{
		characters: characters,
		stories:    stories,
		scrapbooks: scrapbooks,
		images:     images,
		generation: generation,
		export:     export,
		verifier:   verifier,
		maxUpload:  maxUpload,
		logger:     logger.Named("StorybookHandler"),
	}
}

// RegisterRoutes wires the API routes. generateLimiter (optional) is applied
// only to the AI generation endpoint.
func (h *StorybookHandler) RegisterRoutes(r *gin.Engine, generateLimiter gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Direct uploads authenticate with the one-time token, not a bearer token.
	r.PUT("/uploads/:token", h.directUpload)

	api := r.Group("/api", h.AuthMiddleware())
	{
		characters := api.Group("/characters")
		{
			characters.POST("", h.createCharacter)
			characters.GET("/my", h.listMyCharacters)
			characters.GET("/public", h.listPublicCharacters)
			characters.POST("/:id/publish", h.publishCharacter)
			if generateLimiter != nil {
				characters.POST("/:id/generate", generateLimiter, h.generateCharacterImage)
			} else {
				characters.POST("/:id/generate", h.generateCharacterImage)
			}
		}

		stories := api.Group("/stories")
		{
			stories.POST("", h.createStory)
			stories.GET("/my", h.listMyStories)
			stories.GET("/premade", h.listPremadeStories)
			stories.POST("/:id/publish", h.publishStory)
			stories.POST("/:id/print", h.printStory)
			stories.POST("/:id/pages", h.addStoryPage)
			stories.DELETE("/:id/pages/:pageNumber", h.removeStoryPage)
			stories.GET("/:id/export", h.exportStory)
		}

		scrapbooks := api.Group("/scrapbooks")
		{
			scrapbooks.POST("", h.createScrapbook)
			scrapbooks.PUT("/:id", h.updateScrapbook)
			scrapbooks.GET("/my", h.listMyScrapbooks)
			scrapbooks.GET("/:id", h.getScrapbook)
			scrapbooks.POST("/:id/print", h.printScrapbook)
		}

		images := api.Group("/images")
		{
			images.POST("/upload-url", h.createUploadURL)
			images.POST("/transform", h.transformImage)
			images.GET("/transformed", h.listTransformedImages)
			images.GET("/:id/url", h.resolveImageURL)
		}
	}
}

// getUserIDFromContext reads the caller id set by AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, models.ErrUnauthorized
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return userID, nil
}

// parseIDParam parses a uuid path parameter, answering 400 itself on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeBadRequest,
			Message: "invalid " + name + " parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}
