// Package observability provides Prometheus metrics for the calculator API.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "freight_calc"

// Metrics holds the collectors for one registry. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Calculator metrics
	Recalculations  prometheus.Counter
	SweepSteps      *prometheus.CounterVec
	ThresholdsFound *prometheus.CounterVec
	Recommendations *prometheus.CounterVec

	// Selection cache metrics
	CacheLookups *prometheus.CounterVec
	CacheEntries prometheus.Gauge

	DatasetRecords *prometheus.GaugeVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		Recalculations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calc",
			Name:      "recalculations_total",
			Help:      "Total single-voyage recalculations requested",
		}),
		SweepSteps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calc",
			Name:      "sweep_steps_total",
			Help:      "Sweep values evaluated by threshold searches",
		}, []string{"sweep"}),
		ThresholdsFound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calc",
			Name:      "threshold_searches_total",
			Help:      "Threshold searches by sweep and whether a flip was found",
		}, []string{"sweep", "found"}),
		Recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calc",
			Name:      "recommendations_total",
			Help:      "Recommendations issued by outcome",
		}, []string{"recommendation"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Selection cache lookups by result",
		}, []string{"result"}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Stored analyses, expired ones included until the next sweep",
		}),

		DatasetRecords: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "records",
			Help:      "Rows loaded per baseline table",
		}, []string{"table"}),
	}
}

// Handler serves this registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(seconds)
}

func (m *Metrics) RecordRecalculation() {
	if m == nil {
		return
	}
	m.Recalculations.Inc()
}

// RecordSweep records a finished threshold search.
func (m *Metrics) RecordSweep(sweep string, steps int, found bool) {
	if m == nil {
		return
	}
	m.SweepSteps.WithLabelValues(sweep).Add(float64(steps))
	label := "false"
	if found {
		label = "true"
	}
	m.ThresholdsFound.WithLabelValues(sweep, label).Inc()
}

func (m *Metrics) RecordRecommendation(rec string) {
	if m == nil {
		return
	}
	m.Recommendations.WithLabelValues(rec).Inc()
}

// RecordCacheLookup counts a selection cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// SetCacheEntries publishes the selection cache size.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.CacheEntries.Set(float64(n))
}

// SetDatasetSize publishes the row count of each baseline table.
func (m *Metrics) SetDatasetSize(combinations, assignments, scenarios int) {
	if m == nil {
		return
	}
	m.DatasetRecords.WithLabelValues("combinations").Set(float64(combinations))
	m.DatasetRecords.WithLabelValues("assignments").Set(float64(assignments))
	m.DatasetRecords.WithLabelValues("scenarios").Set(float64(scenarios))
}
