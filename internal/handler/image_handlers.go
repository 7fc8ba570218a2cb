package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"storybook-server/internal/models"
)

func (h *StorybookHandler) createUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	channel, err := h.images.CreateUploadChannel(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

// directUpload stores the raw request body under the one-time token issued by
// createUploadURL. It runs outside the auth middleware: the token is the
// credential.
func (h *StorybookHandler) directUpload(c *gin.Context) {
	token := c.Param("token")

	reader := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	data, err := io.ReadAll(reader)
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: body too large or unreadable", models.ErrBadRequest))
		return
	}

	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageID, err := h.images.HandleDirectUpload(c.Request.Context(), token, data, contentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	uploadsTotal.Inc()
	c.JSON(http.StatusOK, uploadResponse{ImageID: imageID})
}

func (h *StorybookHandler) transformImage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req transformImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	result, err := h.images.Transform(c.Request.Context(), userID, req.ImageID, models.CharacterStyle(req.Style))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	transformationsTotal.Inc()
	c.JSON(http.StatusOK, result)
}

func (h *StorybookHandler) listTransformedImages(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	transformations, err := h.images.ListTransformed(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, transformations)
}

func (h *StorybookHandler) resolveImageURL(c *gin.Context) {
	if _, err := getUserIDFromContext(c); err != nil {
		handleServiceError(c, err)
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.images.ResolveImageURL(c.Request.Context(), imageID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, imageURLResponse{URL: url})
}
