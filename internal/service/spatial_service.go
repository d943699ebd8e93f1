package service

import (
	"context"

	"github.com/geodash-org/geodash-backend-go/internal/colormap"
	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/query"
	"github.com/geodash-org/geodash-backend-go/internal/stats"
)

// MetricSource is the external data source collaborator that executes a
// built aggregation query. Bounded execution time and retry policy are its
// responsibility, not the service's.
type MetricSource interface {
	FetchMetricRows(ctx context.Context, q query.Spec) ([]models.MetricRow, error)
}

// SpatialService turns an aggregation spec into a colored choropleth.
// It is stateless; every call is a pure transformation of the parameter
// snapshot plus the externally supplied data.
type SpatialService struct {
	source  MetricSource
	palette colormap.Palette
}

// NewSpatialService creates a new spatial aggregation service.
func NewSpatialService(source MetricSource, palette colormap.Palette) *SpatialService {
	return &SpatialService{source: source, palette: palette}
}

// Fetch builds and executes the aggregation query, computes the color scale
// over the full result, then applies the cell and value filters. Quantile
// breaks are always taken before filtering so that narrowing the displayed
// subset never shifts the colors of retained cells. An empty result is a
// valid no-data outcome, not an error.
func (s *SpatialService) Fetch(ctx context.Context, spec models.AggregationSpec) (*models.Choropleth, error) {
	q, err := query.Build(spec)
	if err != nil {
		return nil, err
	}

	raw, err := s.source.FetchMetricRows(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return &models.Choropleth{
			Rows:    []models.ColoredMetricRow{},
			Palette: s.palette.Names(),
			NoData:  true,
		}, nil
	}

	values := make([]float64, len(raw))
	for i, row := range raw {
		values[i] = row.Value
	}
	breaks, err := stats.Breaks(values)
	if err != nil {
		// Unreachable with a non-empty result set of finite values; treat
		// as no data rather than crashing the render.
		return &models.Choropleth{
			Rows:    []models.ColoredMetricRow{},
			Palette: s.palette.Names(),
			NoData:  true,
		}, nil
	}

	maxValue := breaks.Max()
	rows := make([]models.ColoredMetricRow, 0, len(raw))
	for _, row := range raw {
		if spec.CellFilter != "" && row.CellID != spec.CellFilter {
			continue
		}
		if spec.ValueFilter != nil && !spec.ValueFilter.Contains(row.Value) {
			continue
		}
		intensity := 0.0
		if maxValue > 0 {
			intensity = row.Value / maxValue
		}
		rows = append(rows, models.ColoredMetricRow{
			MetricRow: row,
			Color:     s.palette.ColorFor(row.Value, breaks),
			Intensity: intensity,
		})
	}

	return &models.Choropleth{
		Rows:     rows,
		Count:    len(rows),
		MinValue: breaks.Min(),
		MaxValue: maxValue,
		Breaks:   breaks,
		Palette:  s.palette.Names(),
		NoData:   len(rows) == 0,
	}, nil
}
