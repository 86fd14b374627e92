package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/lithoprint/printdesk/internal/adapter/imagetx"
	"github.com/lithoprint/printdesk/internal/server/http/dto"
)

// ImageHandler manages post-hoc image adjustment.
type ImageHandler struct {
	facade ImageFacade
}

// NewImageHandler constructs ImageHandler.
func NewImageHandler(facade PrintFacade) *ImageHandler {
	return &ImageHandler{facade: facade}
}

// Adjust handles POST /process-image.
func (h *ImageHandler) Adjust(c *gin.Context) {
	var req dto.AdjustImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	outputPath, err := h.facade.AdjustImage(req.Filename, req.Brightness, req.Contrast)
	if err != nil {
		switch {
		case errors.Is(err, imagetx.ErrBadFilename):
			respondError(c, http.StatusBadRequest, "invalid filename")
		case errors.Is(err, fs.ErrNotExist):
			respondError(c, http.StatusNotFound, "image not found")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, dto.AdjustImageResponse{Filename: filepath.Base(outputPath)})
}
