package handler

import (
	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/service"
	"github.com/geodash-org/geodash-backend-go/pkg/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the full render-cycle snapshot in one request.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
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

	snapshot, err := h.dashboardService.Snapshot(c.Request.Context(), spec, filter.View3D)
	if err != nil {
		if isValidationErr(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, snapshot)
}
