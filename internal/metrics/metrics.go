// Package metrics defines the Prometheus collectors of the legal assistant
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	TierQueriesTotal     *prometheus.CounterVec
	RetrievedCandidates  prometheus.Histogram
	ConfidenceScore      prometheus.Histogram
	LowConfidenceTotal   *prometheus.CounterVec
	StageDuration        *prometheus.HistogramVec
	PassagesIndexedTotal *prometheus.CounterVec
	IndexRunsTotal       *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them with reg. A nil reg uses
// a private registry, which keeps tests independent of each other.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		TierQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legal_tier_queries_total",
				Help: "Vector index queries per doc-type tier by outcome (hit, empty, error).",
			},
			[]string{"tier", "outcome"},
		),
		RetrievedCandidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "legal_retrieved_candidates",
				Help:    "Number of candidates returned by hierarchical retrieval per query.",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
			},
		),
		ConfidenceScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "legal_confidence_score",
				Help:    "Confidence score of answered queries.",
				Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
			},
		),
		LowConfidenceTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legal_low_confidence_total",
				Help: "Answers returned with a low-confidence warning, by language.",
			},
			[]string{"language"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "legal_stage_duration_seconds",
				Help:    "Duration of ask pipeline stages (retrieve, generate).",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		PassagesIndexedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legal_passages_indexed_total",
				Help: "Passages written to the index by doc type.",
			},
			[]string{"doc_type"},
		),
		IndexRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "legal_index_runs_total",
				Help: "Corpus indexing runs by status (success, partial, error).",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.TierQueriesTotal,
		m.RetrievedCandidates,
		m.ConfidenceScore,
		m.LowConfidenceTotal,
		m.StageDuration,
		m.PassagesIndexedTotal,
		m.IndexRunsTotal,
	)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}

	return m
}

// Handler returns the Prometheus scrape HTTP handler for the registry the
// metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
