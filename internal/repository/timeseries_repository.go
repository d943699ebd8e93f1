package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
)

const observedAtLayout = "2006-01-02 15:04:05"

// rawSeriesQuery loads the full raw series; filtering happens in the
// time-series service against the parameter snapshot.
const rawSeriesQuery = "SELECT observed_at, cell_id, actual, forecast FROM demand_observations ORDER BY observed_at"

// TimeSeriesRepository loads the raw demand/forecast series. Results are
// memoized per query string: within a session identical queries are assumed
// to return identical results (the dataset is append-mostly and slowly
// changing), so the memo is never invalidated.
type TimeSeriesRepository struct {
	db        *sql.DB
	collector *metrics.Collector

	mu   sync.Mutex
	memo map[string][]models.TimeSeriesPoint
}

// NewTimeSeriesRepository creates a new time-series repository.
func NewTimeSeriesRepository(db *sql.DB, collector *metrics.Collector) *TimeSeriesRepository {
	return &TimeSeriesRepository{
		db:        db,
		collector: collector,
		memo:      make(map[string][]models.TimeSeriesPoint),
	}
}

// FetchSeries returns every raw observation as a time-series point. The
// returned slice is shared with the memo cache and must not be mutated by
// callers.
func (r *TimeSeriesRepository) FetchSeries(ctx context.Context) ([]models.TimeSeriesPoint, error) {
	r.mu.Lock()
	cached, ok := r.memo[rawSeriesQuery]
	r.mu.Unlock()
	r.collector.RecordSeriesCache(ok)
	if ok {
		return cached, nil
	}

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, rawSeriesQuery)
	r.collector.ObserveQuery("timeseries", start)
	if err != nil {
		r.collector.RecordQueryError("timeseries")
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	points := []models.TimeSeriesPoint{}
	for rows.Next() {
		var observedAt, cellID string
		var actual, forecast float64
		if err := rows.Scan(&observedAt, &cellID, &actual, &forecast); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		ts, err := time.ParseInLocation(observedAtLayout, observedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: bad observed_at %q: %v", ErrDataSource, observedAt, err)
		}
		points = append(points, models.TimeSeriesPoint{
			Timestamp: ts,
			CellID:    cellID,
			Actual:    actual,
			Forecast:  forecast,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}

	r.mu.Lock()
	r.memo[rawSeriesQuery] = points
	r.mu.Unlock()

	return points, nil
}
