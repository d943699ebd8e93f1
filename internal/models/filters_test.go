package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationFilter_ToSpec(t *testing.T) {
	f := AggregationFilter{
		StartDate:  "2015-06-06",
		EndDate:    "2015-06-13",
		StartTime:  "09:00",
		EndTime:    "17:00:30",
		Resolution: 7,
		Dimension:  "DROPOFF_LOCATION",
		Metric:     "FORECAST",
		Agg:        "AVG",
		Cell:       "89c25a3",
	}

	spec, err := f.ToSpec()
	require.NoError(t, err)

	assert.Equal(t, DimensionDropoff, spec.Dimension)
	assert.Equal(t, MetricForecast, spec.Metric)
	assert.Equal(t, AggAvg, spec.Agg)
	assert.Equal(t, 7, spec.Resolution)
	assert.Equal(t, "89c25a3", spec.CellFilter)
	assert.Nil(t, spec.ValueFilter)
	assert.Equal(t, time.Date(2015, 6, 6, 0, 0, 0, 0, time.UTC), spec.DateRange.Start)
	assert.Equal(t, "09:00:00", spec.TimeRange.Start.Format("15:04:05"))
	assert.Equal(t, "17:00:30", spec.TimeRange.End.Format("15:04:05"))
}

func TestAggregationFilter_Defaults(t *testing.T) {
	f := AggregationFilter{StartDate: "2015-06-06", EndDate: "2015-06-13"}

	spec, err := f.ToSpec()
	require.NoError(t, err)

	assert.Equal(t, DimensionPickup, spec.Dimension)
	assert.Equal(t, MetricActual, spec.Metric)
	assert.Equal(t, AggSum, spec.Agg)
	assert.Equal(t, "00:00:00", spec.TimeRange.Start.Format("15:04:05"))
	assert.Equal(t, "23:59:59", spec.TimeRange.End.Format("15:04:05"))
}

func TestAggregationFilter_ValueFilter(t *testing.T) {
	low, high := 1.5, 4.5
	f := AggregationFilter{
		StartDate: "2015-06-06", EndDate: "2015-06-13",
		MinValue: &low, MaxValue: &high,
	}
	spec, err := f.ToSpec()
	require.NoError(t, err)
	require.NotNil(t, spec.ValueFilter)
	assert.Equal(t, 1.5, spec.ValueFilter.Min)
	assert.Equal(t, 4.5, spec.ValueFilter.Max)

	// Half-open input still creates a filter with a permissive other bound.
	f = AggregationFilter{StartDate: "2015-06-06", EndDate: "2015-06-13", MinValue: &low}
	spec, err = f.ToSpec()
	require.NoError(t, err)
	require.NotNil(t, spec.ValueFilter)
	assert.True(t, spec.ValueFilter.Contains(1e9))
	assert.False(t, spec.ValueFilter.Contains(1.0))
}

func TestAggregationFilter_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		filter AggregationFilter
	}{
		{"missing dates", AggregationFilter{}},
		{"bad date", AggregationFilter{StartDate: "06/06/2015", EndDate: "2015-06-13"}},
		{"bad time", AggregationFilter{StartDate: "2015-06-06", EndDate: "2015-06-13", StartTime: "9am"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.filter.ToSpec()
			assert.Error(t, err)
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{
		Start: time.Date(2015, 6, 6, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2015, 6, 13, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Contains(time.Date(2015, 6, 6, 23, 59, 0, 0, time.UTC)), "start day inclusive")
	assert.True(t, r.Contains(time.Date(2015, 6, 13, 0, 0, 1, 0, time.UTC)), "end day inclusive")
	assert.False(t, r.Contains(time.Date(2015, 6, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2015, 6, 14, 0, 0, 0, 0, time.UTC)))
}

func TestTimeRange_Contains(t *testing.T) {
	r := TimeRange{
		Start: time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Contains(time.Date(2015, 6, 7, 9, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2015, 6, 7, 17, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2015, 6, 7, 8, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2015, 6, 7, 17, 0, 1, 0, time.UTC)))

	// Inverted window matches nothing.
	inverted := TimeRange{Start: r.End, End: r.Start}
	assert.False(t, inverted.Contains(time.Date(2015, 6, 7, 12, 0, 0, 0, time.UTC)))
}
