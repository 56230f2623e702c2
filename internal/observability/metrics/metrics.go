package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Module provides the shared metric instruments.
var Module = fx.Provide(New)

// Metrics holds the service-level prometheus instruments.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AggregationRunsTotal    *prometheus.CounterVec
	AggregationDuration     *prometheus.HistogramVec
	AggregationDegradations *prometheus.CounterVec

	LeadsIngestedTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesops_http_requests_total",
				Help: "HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesops_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AggregationRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesops_aggregation_runs_total",
				Help: "Commission aggregation runs by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		AggregationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesops_aggregation_duration_seconds",
				Help:    "Commission aggregation latency by kind.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),
		AggregationDegradations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesops_aggregation_degradations_total",
				Help: "Aggregations degraded to zero after a fetch failure.",
			},
			[]string{"role"},
		),
		LeadsIngestedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesops_leads_ingested_total",
				Help: "Webhook lead submissions by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ObserveAggregation records one aggregation run.
func (m *Metrics) ObserveAggregation(kind string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AggregationRunsTotal.WithLabelValues(kind, outcome).Inc()
	m.AggregationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
