package facility

import "github.com/prometheus/client_golang/prometheus"

// Metric names as constants for consistency.
const (
	MetricImportRowsTotal = "praca_import_rows_total"
)

// Import row outcomes used as metric label values.
const (
	OutcomeImported = "imported"
	OutcomeFailed   = "failed"
)

// Metrics contains Prometheus metrics for facility operations.
type Metrics struct {
	importRowsTotal *prometheus.CounterVec
}

// NewMetrics creates the facility metrics collectors. The metrics are
// not registered; call Register with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		importRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricImportRowsTotal,
				Help: "Total number of bulk import rows processed, by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return reg.Register(m.importRowsTotal)
}

// IncImportRow increments the import row counter for an outcome.
func (m *Metrics) IncImportRow(outcome string) {
	m.importRowsTotal.WithLabelValues(outcome).Inc()
}
