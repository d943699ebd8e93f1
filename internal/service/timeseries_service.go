package service

import (
	"context"
	"sort"

	"github.com/geodash-org/geodash-backend-go/internal/models"
)

// SeriesSource is the external data source collaborator supplying the raw
// demand/forecast series.
type SeriesSource interface {
	FetchSeries(ctx context.Context) ([]models.TimeSeriesPoint, error)
}

// TimeSeriesService filters the raw series by a date/time window and an
// optional cell, then aggregates by timestamp. Stateless.
type TimeSeriesService struct {
	source SeriesSource
}

// NewTimeSeriesService creates a new time-series aggregation service.
func NewTimeSeriesService(source SeriesSource) *TimeSeriesService {
	return &TimeSeriesService{source: source}
}

// Fetch returns the aggregated series for the window. A point is retained
// iff its date lies in the inclusive dateRange and its time of day in the
// inclusive timeRange; a timeRange whose start is after its end is an empty
// window by construction, not an error. Points sharing a timestamp are
// summed into one output point, actual and forecast independently. An empty
// result is a valid, explicitly signaled no-data state.
func (s *TimeSeriesService) Fetch(ctx context.Context, dateRange models.DateRange, timeRange models.TimeRange, cellFilter string) (*models.TimeSeries, error) {
	raw, err := s.source.FetchSeries(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[int64]*models.TimeSeriesPoint)
	for _, p := range raw {
		if !dateRange.Contains(p.Timestamp) || !timeRange.Contains(p.Timestamp) {
			continue
		}
		if cellFilter != "" && p.CellID != cellFilter {
			continue
		}
		key := p.Timestamp.Unix()
		agg, ok := sums[key]
		if !ok {
			agg = &models.TimeSeriesPoint{Timestamp: p.Timestamp}
			sums[key] = agg
		}
		agg.Actual += p.Actual
		agg.Forecast += p.Forecast
	}

	points := make([]models.TimeSeriesPoint, 0, len(sums))
	for _, p := range sums {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	return &models.TimeSeries{
		Points:     points,
		Count:      len(points),
		CellFilter: cellFilter,
		NoData:     len(points) == 0,
	}, nil
}
