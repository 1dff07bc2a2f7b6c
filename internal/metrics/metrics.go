// Package metrics exposes Prometheus instrumentation for the import
// pipeline and the state store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors. Create one per process with New.
type Metrics struct {
	ImportsTotal     prometheus.Counter
	ImportsRejected  *prometheus.CounterVec
	ImportWarnings   prometheus.Counter
	StoreMutations   *prometheus.CounterVec
	SetsCurrent      prometheus.Gauge
	ExportsTotal     prometheus.Counter
}

// New registers the collectors with reg. Pass
// prometheus.DefaultRegisterer in production; tests can hand in their own
// registry to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ImportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "mapknit_imports_total",
			Help: "Total number of accepted import documents",
		}),
		ImportsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapknit_imports_rejected_total",
			Help: "Total number of rejected import documents by rejection code",
		}, []string{"code"}),
		ImportWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "mapknit_import_warnings_total",
			Help: "Total number of soft validation warnings emitted by imports",
		}),
		StoreMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mapknit_store_mutations_total",
			Help: "Total number of store mutations by operation",
		}, []string{"op"}),
		SetsCurrent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mapknit_sets_current",
			Help: "Current number of country sets, including the default set",
		}),
		ExportsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "mapknit_exports_total",
			Help: "Total number of export documents served",
		}),
	}
}

// RecordImport counts an accepted import and its warnings.
func (m *Metrics) RecordImport(warnings int) {
	m.ImportsTotal.Inc()
	m.ImportWarnings.Add(float64(warnings))
}

// RecordRejection counts a rejected import by code.
func (m *Metrics) RecordRejection(code string) {
	m.ImportsRejected.WithLabelValues(code).Inc()
}

// RecordMutation counts a store mutation by operation name.
func (m *Metrics) RecordMutation(op string) {
	m.StoreMutations.WithLabelValues(op).Inc()
}

// SetSetCount updates the current set gauge.
func (m *Metrics) SetSetCount(n int) {
	m.SetsCurrent.Set(float64(n))
}
