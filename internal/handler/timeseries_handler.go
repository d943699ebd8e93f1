package handler

import (
	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/service"
	"github.com/geodash-org/geodash-backend-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// TimeSeriesHandler handles HTTP requests for the aggregated demand series.
type TimeSeriesHandler struct {
	seriesService *service.TimeSeriesService
}

// NewTimeSeriesHandler creates a new time-series handler.
func NewTimeSeriesHandler(seriesService *service.TimeSeriesService) *TimeSeriesHandler {
	return &TimeSeriesHandler{seriesService: seriesService}
}

// GetTimeSeries handles GET /api/v1/timeseries
func (h *TimeSeriesHandler) GetTimeSeries(c *gin.Context) {
	var filter models.TimeSeriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	dateRange, err := models.ParseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	timeRange, err := models.ParseTimeRange(filter.StartTime, filter.EndTime)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	series, err := h.seriesService.Fetch(c.Request.Context(), dateRange, timeRange, filter.Cell)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, series)
}
