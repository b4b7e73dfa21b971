package pipeline

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the batch-run instrumentation. Each construction gets its own
// registry so tests can build processors independently.
type Metrics struct {
	reg              *prometheus.Registry
	BatchRuns        prometheus.Counter
	BatchRejected    prometheus.Counter
	BatchDurationSec prometheus.Gauge
	EmailOutcomes    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "intake_batch_runs_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "intake_batch_rejected_total"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{Name: "intake_batch_duration_seconds"})
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "intake_emails_processed_total"},
		[]string{"status"},
	)

	r.MustRegister(runs, rejected, duration, outcomes)
	return &Metrics{
		reg:              r,
		BatchRuns:        runs,
		BatchRejected:    rejected,
		BatchDurationSec: duration,
		EmailOutcomes:    outcomes,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
