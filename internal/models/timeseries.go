package models

import "time"

// TimeSeriesPoint is one raw or aggregated demand observation in time.
// Raw points carry the cell they were observed in; aggregated points sum
// every cell that survived filtering for a timestamp.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	CellID    string    `json:"cell_id,omitempty"`
	Actual    float64   `json:"actual"`
	Forecast  float64   `json:"forecast"`
}

// TimeSeries is the renderer-ready aggregated series.
type TimeSeries struct {
	Points     []TimeSeriesPoint `json:"points"`
	Count      int               `json:"count"`
	CellFilter string            `json:"cell_filter,omitempty"`
	NoData     bool              `json:"no_data"`
}

// AccuracyRow is a precomputed forecast-accuracy metric for one cell.
// SMAPE is consumed opaquely; it is never recomputed here.
type AccuracyRow struct {
	CellID string  `json:"cell_id" db:"cell_id"`
	SMAPE  float64 `json:"smape" db:"smape"`
}
