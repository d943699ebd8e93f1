package handler

import (
	"errors"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/query"
	"github.com/geodash-org/geodash-backend-go/internal/service"
	"github.com/geodash-org/geodash-backend-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// ChoroplethHandler handles HTTP requests for spatial aggregations.
type ChoroplethHandler struct {
	spatialService *service.SpatialService
}

// NewChoroplethHandler creates a new choropleth handler.
func NewChoroplethHandler(spatialService *service.SpatialService) *ChoroplethHandler {
	return &ChoroplethHandler{spatialService: spatialService}
}

// isValidationErr reports whether the error is a rejected-input failure that
// must map to 400 instead of 500.
func isValidationErr(err error) bool {
	return errors.Is(err, query.ErrInvalidResolution) ||
		errors.Is(err, query.ErrInvalidRange) ||
		errors.Is(err, query.ErrUnsupportedAggregation) ||
		errors.Is(err, query.ErrUnknownDimension) ||
		errors.Is(err, query.ErrUnknownMetric)
}

// GetChoropleth handles GET /api/v1/choropleth
func (h *ChoroplethHandler) GetChoropleth(c *gin.Context) {
	var filter models.AggregationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Resolution == 0 {
		filter.Resolution = 8
	}

	spec, err := filter.ToSpec()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	choropleth, err := h.spatialService.Fetch(c.Request.Context(), spec)
	if err != nil {
		if isValidationErr(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	choropleth.ElevationScale = service.ElevationScale(filter.View3D)

	response.Success(c, choropleth)
}
