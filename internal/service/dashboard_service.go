package service

import (
	"context"
	"sync"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
)

// Elevation scale multipliers passed through to the renderer. Pure
// presentation: 3D extrudes cells, 2D flattens them.
const (
	ElevationScale3D = 10000
	ElevationScale2D = 0
)

// ElevationScale returns the renderer elevation multiplier for a view mode.
func ElevationScale(view3D bool) float64 {
	if view3D {
		return ElevationScale3D
	}
	return ElevationScale2D
}

// DashboardSnapshot bundles everything one render cycle needs.
type DashboardSnapshot struct {
	Actual     *models.Choropleth   `json:"actual"`
	Forecast   *models.Choropleth   `json:"forecast"`
	Series     *models.TimeSeries   `json:"series"`
	Accuracy   []models.AccuracyRow `json:"accuracy"`
	Coordinate *spatial.Coordinate  `json:"coordinate,omitempty"`
}

// DashboardService orchestrates one full render cycle: actual and forecast
// choropleths over the same window, the aggregated time series, the accuracy
// rows, and the reference coordinate. The five fetches are independent and
// share no mutable state, so they run concurrently.
type DashboardService struct {
	spatial    *SpatialService
	timeSeries *TimeSeriesService
	accuracy   *AccuracyService
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(spatial *SpatialService, timeSeries *TimeSeriesService, accuracy *AccuracyService) *DashboardService {
	return &DashboardService{spatial: spatial, timeSeries: timeSeries, accuracy: accuracy}
}

// Snapshot runs the full render cycle for the given parameter snapshot.
// The spec's metric is overridden per map: actual demand on one, forecast on
// the other. The first fetch error wins; a fully empty window is still a
// valid snapshot with every part in its no-data state.
func (s *DashboardService) Snapshot(ctx context.Context, spec models.AggregationSpec, view3D bool) (*DashboardSnapshot, error) {
	actualSpec := spec
	actualSpec.Metric = models.MetricActual
	forecastSpec := spec
	forecastSpec.Metric = models.MetricForecast

	var (
		snap     DashboardSnapshot
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		c, err := s.spatial.Fetch(ctx, actualSpec)
		if err != nil {
			fail(err)
			return
		}
		c.ElevationScale = ElevationScale(view3D)
		snap.Actual = c
	}()
	go func() {
		defer wg.Done()
		c, err := s.spatial.Fetch(ctx, forecastSpec)
		if err != nil {
			fail(err)
			return
		}
		c.ElevationScale = ElevationScale(view3D)
		snap.Forecast = c
	}()
	go func() {
		defer wg.Done()
		series, err := s.timeSeries.Fetch(ctx, spec.DateRange, spec.TimeRange, spec.CellFilter)
		if err != nil {
			fail(err)
			return
		}
		snap.Series = series
	}()
	go func() {
		defer wg.Done()
		rows, err := s.accuracy.Accuracy(ctx, spec.CellFilter)
		if err != nil {
			fail(err)
			return
		}
		snap.Accuracy = rows
	}()
	go func() {
		defer wg.Done()
		coord, ok, err := s.accuracy.ReferenceCoordinate(ctx)
		if err != nil {
			fail(err)
			return
		}
		if ok {
			snap.Coordinate = &coord
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &snap, nil
}
