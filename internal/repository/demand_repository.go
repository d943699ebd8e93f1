package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/query"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
)

// ErrDataSource marks an opaque failure of the underlying data source.
// It is propagated unchanged; retry policy lives outside the core.
var ErrDataSource = errors.New("repository: data source failure")

// DemandRepository executes aggregation queries against the demand
// observations table.
type DemandRepository struct {
	db        *sql.DB
	collector *metrics.Collector
}

// NewDemandRepository creates a new demand repository.
func NewDemandRepository(db *sql.DB, collector *metrics.Collector) *DemandRepository {
	return &DemandRepository{db: db, collector: collector}
}

// FetchMetricRows executes a built aggregation query and returns one row per
// cell. Rows with NULL or non-finite values are dropped. An empty result is
// returned as an empty slice, not an error.
func (r *DemandRepository) FetchMetricRows(ctx context.Context, q query.Spec) ([]models.MetricRow, error) {
	stmt, args := q.SQL()

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	r.collector.ObserveQuery("aggregation", start)
	if err != nil {
		r.collector.RecordQueryError("aggregation")
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	result := []models.MetricRow{}
	for rows.Next() {
		var cellID sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&cellID, &value); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		if !cellID.Valid || !value.Valid {
			continue
		}
		if math.IsNaN(value.Float64) || math.IsInf(value.Float64, 0) {
			continue
		}
		result = append(result, models.MetricRow{CellID: cellID.String, Value: value.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}

	return result, nil
}

// ReferenceCoordinate returns the mean center of every distinct cell in the
// dataset, used for initial map centering. Returns false when the dataset is
// empty.
func (r *DemandRepository) ReferenceCoordinate(ctx context.Context) (spatial.Coordinate, bool, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT cell_id FROM demand_observations")
	r.collector.ObserveQuery("coordinate", start)
	if err != nil {
		r.collector.RecordQueryError("coordinate")
		return spatial.Coordinate{}, false, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return spatial.Coordinate{}, false, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return spatial.Coordinate{}, false, fmt.Errorf("%w: %v", ErrDataSource, err)
	}

	center, ok := spatial.MeanCenter(tokens)
	return center, ok, nil
}

// CellTokens returns the distinct native cells present in the dataset,
// ordered for stable presentation in cell pickers.
func (r *DemandRepository) CellTokens(ctx context.Context) ([]string, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT cell_id FROM demand_observations ORDER BY cell_id")
	r.collector.ObserveQuery("cells", start)
	if err != nil {
		r.collector.RecordQueryError("cells")
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return tokens, nil
}
