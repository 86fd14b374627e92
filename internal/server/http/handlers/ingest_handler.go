package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lithoprint/printdesk/internal/bundler"
	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/server/http/dto"
	"github.com/lithoprint/printdesk/internal/usecase"
)

// IngestHandler manages order intake endpoints.
type IngestHandler struct {
	facade IngestFacade
}

// NewIngestHandler constructs IngestHandler.
func NewIngestHandler(facade PrintFacade) *IngestHandler {
	return &IngestHandler{facade: facade}
}

// Upload handles POST /upload.
func (h *IngestHandler) Upload(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pkg := bundler.PackageType(req.Package)
	if pkg == "" {
		pkg = bundler.PackageIndividual
	}

	input := usecase.IngestInput{Package: pkg}
	for _, img := range req.Images {
		data, err := dataURLBytes(img.Src)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid image payload")
			return
		}
		input.Images = append(input.Images, usecase.IngestImage{
			AspectRatio: model.AspectRatio(img.AspectRatio),
			Hangers:     img.Hangars,
			Data:        data,
		})
	}

	orderID, err := h.facade.SubmitOrder(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyUpload):
			respondError(c, http.StatusBadRequest, "no images submitted")
		case errors.Is(err, domainErrors.ErrUnsupportedAspectRatio):
			respondError(c, http.StatusBadRequest, "unsupported aspect ratio")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{OrderID: orderID})
}
