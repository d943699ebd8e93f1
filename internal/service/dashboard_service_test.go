package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodash-org/geodash-backend-go/internal/colormap"
	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
)

type fakeAccuracySource struct {
	rows []models.AccuracyRow
	err  error
}

func (f *fakeAccuracySource) FetchAccuracy(ctx context.Context, cellFilter string) ([]models.AccuracyRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if cellFilter == "" {
		return f.rows, nil
	}
	out := []models.AccuracyRow{}
	for _, r := range f.rows {
		if r.CellID == cellFilter {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCoordinateSource struct {
	coord  spatial.Coordinate
	ok     bool
	tokens []string
}

func (f *fakeCoordinateSource) ReferenceCoordinate(ctx context.Context) (spatial.Coordinate, bool, error) {
	return f.coord, f.ok, nil
}

func (f *fakeCoordinateSource) CellTokens(ctx context.Context) ([]string, error) {
	return f.tokens, nil
}

func newTestDashboard(metricSrc MetricSource, seriesSrc SeriesSource) *DashboardService {
	spatialSvc := NewSpatialService(metricSrc, colormap.Default())
	seriesSvc := NewTimeSeriesService(seriesSrc)
	accuracySvc := NewAccuracyService(
		&fakeAccuracySource{rows: []models.AccuracyRow{{CellID: "a1", SMAPE: 12.5}}},
		&fakeCoordinateSource{coord: spatial.Coordinate{Lat: 40.7, Lng: -74.0}, ok: true},
	)
	return NewDashboardService(spatialSvc, seriesSvc, accuracySvc)
}

func TestDashboardService_Snapshot(t *testing.T) {
	dashboard := newTestDashboard(
		&fakeMetricSource{rows: fiveCells()},
		&fakeSeriesSource{points: []models.TimeSeriesPoint{
			{Timestamp: at("2015-06-07 10:00"), CellID: "a1", Actual: 5, Forecast: 4},
		}},
	)

	snap, err := dashboard.Snapshot(context.Background(), testSpec(), true)
	require.NoError(t, err)

	require.NotNil(t, snap.Actual)
	require.NotNil(t, snap.Forecast)
	require.NotNil(t, snap.Series)
	require.NotNil(t, snap.Coordinate)
	assert.Equal(t, 5, snap.Actual.Count)
	assert.Equal(t, float64(ElevationScale3D), snap.Actual.ElevationScale)
	assert.Equal(t, float64(ElevationScale3D), snap.Forecast.ElevationScale)
	assert.Len(t, snap.Accuracy, 1)
	assert.InDelta(t, 40.7, snap.Coordinate.Lat, 1e-9)
}

func TestDashboardService_2DViewFlattens(t *testing.T) {
	dashboard := newTestDashboard(
		&fakeMetricSource{rows: fiveCells()},
		&fakeSeriesSource{},
	)

	snap, err := dashboard.Snapshot(context.Background(), testSpec(), false)
	require.NoError(t, err)
	assert.Equal(t, float64(ElevationScale2D), snap.Actual.ElevationScale)
}

func TestDashboardService_FetchErrorWins(t *testing.T) {
	boom := errors.New("series store offline")
	dashboard := newTestDashboard(
		&fakeMetricSource{rows: fiveCells()},
		&fakeSeriesSource{err: boom},
	)

	_, err := dashboard.Snapshot(context.Background(), testSpec(), false)
	assert.ErrorIs(t, err, boom)
}

func TestDashboardService_EmptyWindowIsValidSnapshot(t *testing.T) {
	dashboard := newTestDashboard(&fakeMetricSource{}, &fakeSeriesSource{})

	snap, err := dashboard.Snapshot(context.Background(), testSpec(), false)
	require.NoError(t, err)
	assert.True(t, snap.Actual.NoData)
	assert.True(t, snap.Forecast.NoData)
	assert.True(t, snap.Series.NoData)
}
