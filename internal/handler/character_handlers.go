package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storybook-server/internal/models"
	"storybook-server/internal/service"
)

func (h *StorybookHandler) createCharacter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	character, err := h.characters.Create(c.Request.Context(), userID, service.CreateCharacterInput{
		Name:            req.Name,
		Description:     req.Description,
		Style:           models.CharacterStyle(req.Style),
		OriginalImageID: req.OriginalImageID,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, character)
}

func (h *StorybookHandler) listMyCharacters(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	characters, err := h.characters.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *StorybookHandler) listPublicCharacters(c *gin.Context) {
	characters, err := h.characters.ListPublic(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *StorybookHandler) publishCharacter(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	characterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.characters.Publish(c.Request.Context(), userID, characterID); err != nil {
		handleServiceError(c, err)
		return
	}

	publishesTotal.WithLabelValues("character").Inc()
	c.JSON(http.StatusOK, gin.H{"published": true})
}

func (h *StorybookHandler) generateCharacterImage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	characterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.generation.GenerateCharacterImage(c.Request.Context(), userID, characterID)
	if err != nil {
		generationsTotal.WithLabelValues("error").Inc()
		handleServiceError(c, err)
		return
	}

	if result.Success {
		generationsTotal.WithLabelValues("success").Inc()
	} else {
		generationsTotal.WithLabelValues("soft_failure").Inc()
		h.logger.Warn("Generation reported soft failure", zap.String("characterID", characterID.String()))
	}
	c.JSON(http.StatusOK, result)
}
