package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and every collector the service exports
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	StoreReads        prometheus.Counter
	StoreWrites       *prometheus.CounterVec
	StoreCorruptReads prometheus.Counter
	Watchlists        prometheus.Gauge
}

// New creates and registers all collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StoreReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_reads_total",
			Help: "Total number of data file reads",
		}),
		StoreWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_writes_total",
				Help: "Total number of data file writes by result",
			},
			[]string{"result"},
		),
		StoreCorruptReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_corrupt_reads_total",
			Help: "Reads that found an undecodable data file and fell back to defaults",
		}),
		Watchlists: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "watchlists",
			Help: "Number of watchlists in the last document written",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.StoreReads,
		m.StoreWrites,
		m.StoreCorruptReads,
		m.Watchlists,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRead implements storage.Observer
func (m *Metrics) ObserveRead(corrupt bool) {
	m.StoreReads.Inc()
	if corrupt {
		m.StoreCorruptReads.Inc()
	}
}

// ObserveWrite implements storage.Observer
func (m *Metrics) ObserveWrite(watchlists int, err error) {
	if err != nil {
		m.StoreWrites.WithLabelValues("error").Inc()
		return
	}
	m.StoreWrites.WithLabelValues("ok").Inc()
	m.Watchlists.Set(float64(watchlists))
}
