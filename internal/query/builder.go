// Package query builds structured aggregation queries over the demand
// observations. Identifiers (columns, source, aggregate functions) only ever
// come from validated enums; user-supplied values are carried as bound
// arguments, never spliced into SQL text.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geodash-org/geodash-backend-go/internal/models"
	"github.com/geodash-org/geodash-backend-go/internal/spatial"
)

// Validation errors surfaced at build time. A spec that fails validation is
// rejected before any query is executed.
var (
	ErrInvalidResolution      = errors.New("query: resolution outside supported range")
	ErrInvalidRange           = errors.New("query: date range start after end")
	ErrUnsupportedAggregation = errors.New("query: unsupported aggregate function")
	ErrUnknownDimension       = errors.New("query: unknown dimension")
	ErrUnknownMetric          = errors.New("query: unknown metric")
)

// Source is the table the dashboard aggregates over.
const Source = "demand_observations"

// Predicate is one WHERE condition with its bound arguments.
type Predicate struct {
	Expr string
	Args []interface{}
}

// Spec is a fully validated, parameterized aggregation query description.
// Column and group-by identifiers are derived from enum whitelists only.
type Spec struct {
	Columns    []string
	Source     string
	Predicates []Predicate
	GroupBy    string
}

// SQL renders the spec into a parameterized statement plus its arguments.
func (s Spec) SQL() (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.Source)

	var args []interface{}
	if len(s.Predicates) > 0 {
		exprs := make([]string, len(s.Predicates))
		for i, p := range s.Predicates {
			exprs[i] = p.Expr
			args = append(args, p.Args...)
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(exprs, " AND "))
	}
	if s.GroupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(s.GroupBy)
	}
	return b.String(), args
}

// metricColumns maps each metric to its value column and whether the column
// is nullable. Nullable metrics get an explicit IS NOT NULL predicate so that
// SUM, COUNT and AVG all exclude the same rows.
var metricColumns = map[models.Metric]struct {
	column   string
	nullable bool
}{
	models.MetricActual:   {column: "actual"},
	models.MetricForecast: {column: "forecast"},
	models.MetricScore:    {column: "score", nullable: true},
	models.MetricTrips:    {}, // row count only, see Build
}

// dimensionPrefixes maps each dimension to its cell column family. The full
// column name is "<prefix>_cell_r<resolution>", precomputed at ingest time.
var dimensionPrefixes = map[models.Dimension]string{
	models.DimensionPickup:  "pickup",
	models.DimensionDropoff: "dropoff",
}

// Build validates the aggregation spec and produces the query description.
// It fails fast on any invalid parameter; nothing is coerced silently.
func Build(spec models.AggregationSpec) (Spec, error) {
	if !spatial.ValidResolution(spec.Resolution) {
		return Spec{}, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidResolution, spec.Resolution, spatial.MinResolution, spatial.MaxResolution)
	}
	if spec.DateRange.Start.After(spec.DateRange.End) {
		return Spec{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			spec.DateRange.Start.Format("2006-01-02"), spec.DateRange.End.Format("2006-01-02"))
	}
	if !spec.Agg.Valid() {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnsupportedAggregation, spec.Agg)
	}
	prefix, ok := dimensionPrefixes[spec.Dimension]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownDimension, spec.Dimension)
	}
	metric, ok := metricColumns[spec.Metric]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownMetric, spec.Metric)
	}

	var aggExpr string
	switch {
	case spec.Agg == models.AggCount:
		// COUNT counts rows; the metric column is not read.
		aggExpr = "ROUND(COUNT(*), 2)"
	case metric.column == "":
		return Spec{}, fmt.Errorf("%w: %s over metric %q", ErrUnsupportedAggregation, spec.Agg, spec.Metric)
	default:
		aggExpr = fmt.Sprintf("ROUND(%s(%s), 2)", spec.Agg, metric.column)
	}

	cellColumn := fmt.Sprintf("%s_cell_r%d", prefix, spec.Resolution)

	q := Spec{
		Columns: []string{
			cellColumn + " AS cell_id",
			aggExpr + " AS value",
		},
		Source:  Source,
		GroupBy: cellColumn,
		Predicates: []Predicate{
			{
				Expr: "date(observed_at) BETWEEN ? AND ?",
				Args: []interface{}{
					spec.DateRange.Start.Format("2006-01-02"),
					spec.DateRange.End.Format("2006-01-02"),
				},
			},
			{
				Expr: "time(observed_at) BETWEEN ? AND ?",
				Args: []interface{}{
					spec.TimeRange.Start.Format("15:04:05"),
					spec.TimeRange.End.Format("15:04:05"),
				},
			},
		},
	}
	if metric.nullable {
		q.Predicates = append(q.Predicates, Predicate{Expr: metric.column + " IS NOT NULL"})
	}
	return q, nil
}
