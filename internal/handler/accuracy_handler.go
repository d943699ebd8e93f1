package handler

import (
	"github.com/geodash-org/geodash-backend-go/internal/service"
	"github.com/geodash-org/geodash-backend-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// AccuracyHandler handles HTTP requests for forecast-accuracy metrics and
// map-centering support data.
type AccuracyHandler struct {
	accuracyService *service.AccuracyService
}

// NewAccuracyHandler creates a new accuracy handler.
func NewAccuracyHandler(accuracyService *service.AccuracyService) *AccuracyHandler {
	return &AccuracyHandler{accuracyService: accuracyService}
}

// GetAccuracy handles GET /api/v1/accuracy
func (h *AccuracyHandler) GetAccuracy(c *gin.Context) {
	rows, err := h.accuracyService.Accuracy(c.Request.Context(), c.Query("cell"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetCoordinate handles GET /api/v1/coordinate
func (h *AccuracyHandler) GetCoordinate(c *gin.Context) {
	coord, ok, err := h.accuracyService.ReferenceCoordinate(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.Success(c, gin.H{"no_data": true})
		return
	}

	response.Success(c, coord)
}

// GetCells handles GET /api/v1/cells
func (h *AccuracyHandler) GetCells(c *gin.Context) {
	cells, err := h.accuracyService.Cells(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"cells": cells,
		"count": len(cells),
	})
}
