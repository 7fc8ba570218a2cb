package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storybook-server/internal/models"
	"storybook-server/internal/service"
)

func (h *StorybookHandler) createScrapbook(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req scrapbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	scrapbook, err := h.scrapbooks.Create(c.Request.Context(), userID, service.CreateScrapbookInput{
		Title:       req.Title,
		Description: req.Description,
		ImageIDs:    req.ImageIDs,
		Layout:      models.ScrapbookLayout(req.Layout),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scrapbook)
}

func (h *StorybookHandler) updateScrapbook(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	scrapbookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req scrapbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	scrapbook, err := h.scrapbooks.Update(c.Request.Context(), userID, scrapbookID, service.UpdateScrapbookInput{
		Title:       req.Title,
		Description: req.Description,
		ImageIDs:    req.ImageIDs,
		Layout:      models.ScrapbookLayout(req.Layout),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scrapbook)
}

func (h *StorybookHandler) listMyScrapbooks(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	scrapbooks, err := h.scrapbooks.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scrapbooks)
}

func (h *StorybookHandler) getScrapbook(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	scrapbookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.scrapbooks.Get(c.Request.Context(), userID, scrapbookID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *StorybookHandler) printScrapbook(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	scrapbookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.scrapbooks.GeneratePrintURL(c.Request.Context(), userID, scrapbookID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
