package main

import (
	"log"

	"github.com/geodash-org/geodash-backend-go/internal/api"
	"github.com/geodash-org/geodash-backend-go/internal/colormap"
	"github.com/geodash-org/geodash-backend-go/internal/config"
	"github.com/geodash-org/geodash-backend-go/internal/database"
	"github.com/geodash-org/geodash-backend-go/internal/handler"
	"github.com/geodash-org/geodash-backend-go/internal/repository"
	"github.com/geodash-org/geodash-backend-go/internal/service"
	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
)

func main() {
	cfg := config.Load()

	palette, err := colormap.New(cfg.Palette)
	if err != nil {
		log.Fatal("Invalid color palette: ", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()
	db := database.GetDB()

	collector := metrics.NewCollector("geodash")

	demandRepo := repository.NewDemandRepository(db, collector)
	seriesRepo := repository.NewTimeSeriesRepository(db, collector)
	accuracyRepo := repository.NewAccuracyRepository(db, collector)

	spatialService := service.NewSpatialService(demandRepo, palette)
	seriesService := service.NewTimeSeriesService(seriesRepo)
	accuracyService := service.NewAccuracyService(accuracyRepo, demandRepo)
	dashboardService := service.NewDashboardService(spatialService, seriesService, accuracyService)

	router := api.SetupRouter(api.Handlers{
		Choropleth: handler.NewChoroplethHandler(spatialService),
		TimeSeries: handler.NewTimeSeriesHandler(seriesService),
		Accuracy:   handler.NewAccuracyHandler(accuracyService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
	}, collector)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
