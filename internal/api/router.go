package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geodash-org/geodash-backend-go/internal/handler"
	"github.com/geodash-org/geodash-backend-go/internal/middleware"
	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
)

// Handlers bundles the endpoint handlers the router wires up.
type Handlers struct {
	Choropleth *handler.ChoroplethHandler
	TimeSeries *handler.TimeSeriesHandler
	Accuracy   *handler.AccuracyHandler
	Dashboard  *handler.DashboardHandler
}

// SetupRouter configures the HTTP routes and middleware chain.
func SetupRouter(h Handlers, collector *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS for the dashboard frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Geodash backend is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/choropleth", h.Choropleth.GetChoropleth)
		api.GET("/timeseries", h.TimeSeries.GetTimeSeries)
		api.GET("/accuracy", h.Accuracy.GetAccuracy)
		api.GET("/coordinate", h.Accuracy.GetCoordinate)
		api.GET("/cells", h.Accuracy.GetCells)
		api.GET("/dashboard", h.Dashboard.GetDashboard)
	}

	return r
}
