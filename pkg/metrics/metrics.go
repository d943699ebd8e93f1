package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection.
type Collector struct {
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	QueryDuration    *prometheus.HistogramVec
	QueryErrorsTotal *prometheus.CounterVec

	SeriesCacheHitsTotal   prometheus.Counter
	SeriesCacheMissesTotal prometheus.Counter
}

// NewCollector creates a new metrics collector. Call once per process;
// collectors register themselves with the default registry.
func NewCollector(namespace string) *Collector {
	return &Collector{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"endpoint"},
		),

		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Data source query duration in seconds by query type",
				Buckets:   []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5},
			},
			[]string{"query_type"},
		),

		QueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_errors_total",
				Help:      "Total number of data source errors by query type",
			},
			[]string{"query_type"},
		),

		SeriesCacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_cache_hits_total",
				Help:      "Raw time-series loads served from the memo cache",
			},
		),

		SeriesCacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "series_cache_misses_total",
				Help:      "Raw time-series loads that went to the data source",
			},
		),
	}
}

// ObserveQuery records the duration of one data source query. Nil-safe so
// repositories can run without a collector in tests.
func (c *Collector) ObserveQuery(queryType string, start time.Time) {
	if c == nil {
		return
	}
	c.QueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// RecordQueryError increments the error counter for a query type.
func (c *Collector) RecordQueryError(queryType string) {
	if c == nil {
		return
	}
	c.QueryErrorsTotal.WithLabelValues(queryType).Inc()
}

// RecordAPIRequest records one completed HTTP request.
func (c *Collector) RecordAPIRequest(endpoint, method, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	c.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordSeriesCache records a memo cache hit or miss.
func (c *Collector) RecordSeriesCache(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.SeriesCacheHitsTotal.Inc()
	} else {
		c.SeriesCacheMissesTotal.Inc()
	}
}
