package models

import (
	"time"

	"github.com/geodash-org/geodash-backend-go/internal/colormap"
	"github.com/geodash-org/geodash-backend-go/internal/stats"
)

// Dimension selects which location of a demand observation is aggregated.
type Dimension string

const (
	DimensionPickup  Dimension = "PICKUP_LOCATION"
	DimensionDropoff Dimension = "DROPOFF_LOCATION"
)

// Valid reports whether the dimension is a known enum value.
func (d Dimension) Valid() bool {
	return d == DimensionPickup || d == DimensionDropoff
}

// Metric selects the value column being aggregated.
type Metric string

const (
	MetricTrips    Metric = "TRIPS"    // row count, no value column
	MetricActual   Metric = "ACTUAL"   // observed demand
	MetricForecast Metric = "FORECAST" // forecast demand
	MetricScore    Metric = "SCORE"    // nullable quality score
)

// Valid reports whether the metric is a known enum value.
func (m Metric) Valid() bool {
	switch m {
	case MetricTrips, MetricActual, MetricForecast, MetricScore:
		return true
	}
	return false
}

// AggFunc is the aggregate function applied to the metric per cell.
type AggFunc string

const (
	AggSum   AggFunc = "SUM"
	AggCount AggFunc = "COUNT"
	AggAvg   AggFunc = "AVG"
)

// Valid reports whether the aggregate function is supported.
func (a AggFunc) Valid() bool {
	return a == AggSum || a == AggCount || a == AggAvg
}

// DateRange is an inclusive calendar-date window. Only the date component of
// Start and End is significant.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date component of t lies inside the window.
func (r DateRange) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dateOnly(r.Start)) && !d.After(dateOnly(r.End))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeRange is an inclusive time-of-day window. Only the clock component of
// Start and End is significant. A start later than the end makes the window
// empty; there is no wraparound across midnight.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the clock component of t lies inside the window.
func (r TimeRange) Contains(t time.Time) bool {
	s := secondOfDay(t)
	return s >= secondOfDay(r.Start) && s <= secondOfDay(r.End)
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// ValueRange is an inclusive numeric filter on the aggregated value.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range.
func (r ValueRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// AggregationSpec is the full parameter snapshot of one spatial aggregation.
// It is built fresh per request, immutable once built, and consumed exactly
// once by the query builder.
type AggregationSpec struct {
	Dimension   Dimension
	Metric      Metric
	Resolution  int
	Agg         AggFunc
	DateRange   DateRange
	TimeRange   TimeRange
	CellFilter  string      // exact cell match, empty = all cells
	ValueFilter *ValueRange // nil = no value filter
}

// MetricRow is one aggregated value keyed by spatial cell.
type MetricRow struct {
	CellID string  `json:"cell_id"`
	Value  float64 `json:"value"`
}

// ColoredMetricRow is a MetricRow with presentation fields attached. It is
// derived per request and never persisted.
type ColoredMetricRow struct {
	MetricRow
	Color     colormap.RGB `json:"color"`
	Intensity float64      `json:"intensity"` // value / max(values), 0 when max <= 0
}

// Choropleth is the renderer-ready result of one spatial aggregation.
type Choropleth struct {
	Rows           []ColoredMetricRow   `json:"rows"`
	Count          int                  `json:"count"`
	MinValue       float64              `json:"min_value"`
	MaxValue       float64              `json:"max_value"`
	Breaks         stats.QuantileBreaks `json:"breaks"`
	Palette        []string             `json:"palette"`
	ElevationScale float64              `json:"elevation_scale"`
	NoData         bool                 `json:"no_data"`
}
