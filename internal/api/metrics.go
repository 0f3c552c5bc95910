package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatlens"

// Outcome label values.
const (
	outcomeSuccess  = "success"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
	outcomeNoData   = "no_data"
)

// Metrics holds the service counters and the registry serving them.
// A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	uploads         *prometheus.CounterVec
	summaryRequests *prometheus.CounterVec
	renders         *prometheus.CounterVec
}

// NewMetrics creates the counters on a fresh registry, together with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of chat export uploads",
			},
			[]string{"outcome"}, // success, invalid, error
		),
		summaryRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summary_requests_total",
				Help:      "Total number of summary API requests",
			},
			[]string{"outcome"}, // success, not_found, error
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dashboard_renders_total",
				Help:      "Total number of dashboard page renders",
			},
			[]string{"outcome"}, // success, no_data, error
		),
	}

	m.registry.MustRegister(m.uploads, m.summaryRequests, m.renders)
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) recordUpload(outcome string) {
	if m != nil {
		m.uploads.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) recordSummaryRequest(outcome string) {
	if m != nil {
		m.summaryRequests.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) recordRender(outcome string) {
	if m != nil {
		m.renders.WithLabelValues(outcome).Inc()
	}
}
