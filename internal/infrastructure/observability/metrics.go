package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meridianbank/underwriting-service/internal/domain/service"
)

// PrometheusCollector implements port.MetricsCollector over a Prometheus
// registry. Metric families are registered up front; emissions against an
// unregistered name are dropped, keeping the collector fire-and-forget.
type PrometheusCollector struct {
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusCollector registers the underwriting metric families with the
// given registerer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: service.MetricDecisionsTotal,
		Help: "Count of loan decisions by model version and outcome.",
	}, []string{"model_version", "decision"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    service.MetricDecisionLatency,
		Help:    "Decision latency by authoritative model version.",
		Buckets: prometheus.DefBuckets,
	}, []string{"model_version"})

	reg.MustRegister(decisions, latency)

	return &PrometheusCollector{
		counters: map[string]*prometheus.CounterVec{
			service.MetricDecisionsTotal: decisions,
		},
		histograms: map[string]*prometheus.HistogramVec{
			service.MetricDecisionLatency: latency,
		},
	}
}

// IncrementCounter bumps the named counter for the given label set.
func (c *PrometheusCollector) IncrementCounter(name string, labels map[string]string) {
	if vec, ok := c.counters[name]; ok {
		vec.With(labels).Inc()
	}
}

// ObserveLatency records a latency sample for the given label set.
func (c *PrometheusCollector) ObserveLatency(name string, labels map[string]string, seconds float64) {
	if vec, ok := c.histograms[name]; ok {
		vec.With(labels).Observe(seconds)
	}
}

// MetricsHandler returns the HTTP handler serving the /metrics exposition for
// the given gatherer.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
