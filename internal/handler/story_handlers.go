package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storybook-server/internal/models"
	"storybook-server/internal/service"
)

func (h *StorybookHandler) createStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	story, err := h.stories.Create(c.Request.Context(), userID, service.CreateStoryInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.StoryType(req.Type),
		Pages:       req.Pages,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, story)
}

func (h *StorybookHandler) listMyStories(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	stories, err := h.stories.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StorybookHandler) listPremadeStories(c *gin.Context) {
	stories, err := h.stories.ListPremade(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StorybookHandler) publishStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	storyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stories.Publish(c.Request.Context(), userID, storyID); err != nil {
		handleServiceError(c, err)
		return
	}

	publishesTotal.WithLabelValues("story").Inc()
	c.JSON(http.StatusOK, gin.H{"published": true})
}

func (h *StorybookHandler) printStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	storyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.stories.GeneratePrintURL(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StorybookHandler) addStoryPage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	storyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addStoryPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	story, err := h.stories.AddPage(c.Request.Context(), userID, storyID, service.AddPageInput{
		Text:               req.Text,
		OriginalImageID:    req.OriginalImageID,
		TransformedImageID: req.TransformedImageID,
		CharacterIDs:       req.CharacterIDs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StorybookHandler) removeStoryPage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	storyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pageNumber, err := strconv.Atoi(c.Param("pageNumber"))
	if err != nil || pageNumber < 1 {
		handleServiceError(c, fmt.Errorf("%w: invalid page number", models.ErrBadRequest))
		return
	}

	story, err := h.stories.RemovePage(c.Request.Context(), userID, storyID, pageNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StorybookHandler) exportStory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	storyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filename, data, err := h.export.ExportStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
}
