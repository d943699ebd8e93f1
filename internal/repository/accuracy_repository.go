package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/pkg/metrics"
)

// AccuracyRepository reads precomputed forecast-accuracy rows.
type AccuracyRepository struct {
	db        *sql.DB
	collector *metrics.Collector
}

// NewAccuracyRepository creates a new accuracy repository.
func NewAccuracyRepository(db *sql.DB, collector *metrics.Collector) *AccuracyRepository {
	return &AccuracyRepository{db: db, collector: collector}
}

// FetchAccuracy returns the SMAPE rows, optionally restricted to one cell.
func (r *AccuracyRepository) FetchAccuracy(ctx context.Context, cellFilter string) ([]models.AccuracyRow, error) {
	stmt := "SELECT cell_id, smape FROM cell_accuracy"
	var args []interface{}
	if cellFilter != "" {
		stmt += " WHERE cell_id = ?"
		args = append(args, cellFilter)
	}
	stmt += " ORDER BY cell_id"

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	r.collector.ObserveQuery("accuracy", start)
	if err != nil {
		r.collector.RecordQueryError("accuracy")
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	defer rows.Close()

	result := []models.AccuracyRow{}
	for rows.Next() {
		var row models.AccuracyRow
		if err := rows.Scan(&row.CellID, &row.SMAPE); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDataSource, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSource, err)
	}
	return result, nil
}
