// Package metrics exposes the business counters scraped from /-/metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "atelier"

// Metrics holds the quote lifecycle instruments.
type Metrics struct {
	registry        *prometheus.Registry
	quotesSubmitted *prometheus.CounterVec
	submitFailures  *prometheus.CounterVec
	quoteValue      prometheus.Histogram
	draftsActive    prometheus.Gauge
	baserowMirrors  *prometheus.CounterVec
}

// New registers the instruments, plus Go runtime and process collectors,
// on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		quotesSubmitted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_submitted_total",
			Help:      "Quotes persisted, by service type.",
		}, []string{"service_type"}),
		submitFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_submit_failures_total",
			Help:      "Quote submissions rejected or failed, by reason.",
		}, []string{"reason"}),
		quoteValue: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_total_value_brl",
			Help:      "Total value of submitted quotes in reais.",
			Buckets:   []float64{100, 200, 300, 500, 750, 1000, 1500, 2500, 5000},
		}),
		draftsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "drafts_active",
			Help:      "Quote drafts currently held in memory.",
		}),
		baserowMirrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baserow_mirror_total",
			Help:      "Quote mirror attempts to Baserow, by outcome.",
		}, []string{"outcome"}),
	}
}

// QuoteSubmitted records a persisted quote.
func (m *Metrics) QuoteSubmitted(serviceType string, total decimal.Decimal) {
	m.quotesSubmitted.WithLabelValues(serviceType).Inc()
	m.quoteValue.Observe(total.InexactFloat64())
}

// SubmitFailed records a failed submission.
func (m *Metrics) SubmitFailed(reason string) {
	m.submitFailures.WithLabelValues(reason).Inc()
}

// SetDraftsActive publishes the draft store size.
func (m *Metrics) SetDraftsActive(n int) {
	m.draftsActive.Set(float64(n))
}

// BaserowMirror records a mirror attempt outcome: "ok", "failed" or "skipped".
func (m *Metrics) BaserowMirror(outcome string) {
	m.baserowMirrors.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
