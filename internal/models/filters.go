package models

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "15:04"
	clockLongLayout = "15:04:05"
)

// AggregationFilter carries the raw choropleth query parameters as bound from
// the request. ToSpec turns it into a typed AggregationSpec; enum and range
// validation happens later in the query builder.
type AggregationFilter struct {
	StartDate  string   `form:"startDate"`  // YYYY-MM-DD, required
	EndDate    string   `form:"endDate"`    // YYYY-MM-DD, required
	StartTime  string   `form:"startTime"`  // HH:MM[:SS], default 00:00:00
	EndTime    string   `form:"endTime"`    // HH:MM[:SS], default 23:59:59
	Resolution int      `form:"resolution"` // 6-9
	Dimension  string   `form:"dimension"`  // PICKUP_LOCATION, DROPOFF_LOCATION
	Metric     string   `form:"metric"`     // TRIPS, ACTUAL, FORECAST, SCORE
	Agg        string   `form:"agg"`        // SUM, COUNT, AVG
	Cell       string   `form:"cell"`       // exact cell token, empty = all
	MinValue   *float64 `form:"minValue"`
	MaxValue   *float64 `form:"maxValue"`
	View3D     bool     `form:"view3d"`
}

// ToSpec parses the filter into an immutable AggregationSpec, filling the
// documented defaults for fields left empty.
func (f AggregationFilter) ToSpec() (AggregationSpec, error) {
	dr, err := ParseDateRange(f.StartDate, f.EndDate)
	if err != nil {
		return AggregationSpec{}, err
	}
	tr, err := ParseTimeRange(f.StartTime, f.EndTime)
	if err != nil {
		return AggregationSpec{}, err
	}

	spec := AggregationSpec{
		Dimension:  Dimension(f.Dimension),
		Metric:     Metric(f.Metric),
		Resolution: f.Resolution,
		Agg:        AggFunc(f.Agg),
		DateRange:  dr,
		TimeRange:  tr,
		CellFilter: f.Cell,
	}
	if spec.Dimension == "" {
		spec.Dimension = DimensionPickup
	}
	if spec.Metric == "" {
		spec.Metric = MetricActual
	}
	if spec.Agg == "" {
		spec.Agg = AggSum
	}
	if f.MinValue != nil || f.MaxValue != nil {
		vr := ValueRange{Min: minOrDefault(f.MinValue), Max: maxOrDefault(f.MaxValue)}
		spec.ValueFilter = &vr
	}
	return spec, nil
}

func minOrDefault(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func maxOrDefault(p *float64) float64 {
	if p == nil {
		return 1e18
	}
	return *p
}

// TimeSeriesFilter carries the raw time-series query parameters.
type TimeSeriesFilter struct {
	StartDate string `form:"startDate"` // YYYY-MM-DD, required
	EndDate   string `form:"endDate"`   // YYYY-MM-DD, required
	StartTime string `form:"startTime"` // HH:MM[:SS], default 00:00:00
	EndTime   string `form:"endTime"`   // HH:MM[:SS], default 23:59:59
	Cell      string `form:"cell"`      // exact cell token, empty = all
}

// ParseDateRange parses two YYYY-MM-DD strings into an inclusive DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("startDate and endDate are required")
	}
	s, err := time.ParseInLocation(dateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid startDate %q: %w", start, err)
	}
	e, err := time.ParseInLocation(dateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid endDate %q: %w", end, err)
	}
	return DateRange{Start: s, End: e}, nil
}

// ParseTimeRange parses two HH:MM[:SS] strings into an inclusive TimeRange,
// defaulting to the full day when empty.
func ParseTimeRange(start, end string) (TimeRange, error) {
	if start == "" {
		start = "00:00:00"
	}
	if end == "" {
		end = "23:59:59"
	}
	s, err := parseClock(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid startTime %q: %w", start, err)
	}
	e, err := parseClock(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid endTime %q: %w", end, err)
	}
	return TimeRange{Start: s, End: e}, nil
}

func parseClock(v string) (time.Time, error) {
	if t, err := time.ParseInLocation(clockLongLayout, v, time.UTC); err == nil {
		return t, nil
	}
	return time.ParseInLocation(clockLayout, v, time.UTC)
}
