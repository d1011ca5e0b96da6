package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Business metrics
	BusinessSearches prometheus.Counter
	LeadsCaptured    *prometheus.CounterVec
	DegradedReads    *prometheus.CounterVec
	SEOGenerations   *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),

		BusinessSearches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "business_searches_total",
			Help: "Total number of business searches performed",
		}),
		LeadsCaptured: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leads_captured_total",
				Help: "Total number of quote requests captured",
			},
			[]string{"source"}, // neon, supabase, memory
		),
		DegradedReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "degraded_reads_total",
				Help: "Total number of reads served from fallback data",
			},
			[]string{"entity"}, // business, lead
		),
		SEOGenerations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_generations_total",
				Help: "Total number of page metadata generations",
			},
			[]string{"page_type"},
		),

		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"operation"}, // select, insert, update
		),

		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
	}

	return m
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, not the raw request path

			err := next(c)

			status := c.Response().Status
			duration := time.Since(start).Seconds()

			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(status)).Observe(duration)
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return err
		}
	}
}

// RecordBusinessSearch increments the business searches counter
func (m *Metrics) RecordBusinessSearch() {
	m.BusinessSearches.Inc()
}

// RecordLeadCaptured increments the leads captured counter for a source
func (m *Metrics) RecordLeadCaptured(source string) {
	m.LeadsCaptured.WithLabelValues(source).Inc()
}

// RecordDegradedRead increments the degraded reads counter for an entity
func (m *Metrics) RecordDegradedRead(entity string) {
	m.DegradedReads.WithLabelValues(entity).Inc()
}

// RecordSEOGeneration increments the metadata generations counter
func (m *Metrics) RecordSEOGeneration(pageType string) {
	m.SEOGenerations.WithLabelValues(pageType).Inc()
}

// RecordDBQuery records database query duration
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheHit increments cache hits counter
func (m *Metrics) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments cache misses counter
func (m *Metrics) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
