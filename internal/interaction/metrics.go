package interaction

import "github.com/prometheus/client_golang/prometheus"

// Metric names as constants for consistency.
const (
	MetricVotesTotal = "praca_votes_total"
)

// Metrics contains Prometheus metrics for interaction operations.
type Metrics struct {
	votesTotal *prometheus.CounterVec
}

// NewMetrics creates the interaction metrics collectors. The metrics
// are not registered; call Register with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		votesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricVotesTotal,
				Help: "Total number of answers recorded, by answer value",
			},
			[]string{"resposta"},
		),
	}
}

// Register registers all collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return reg.Register(m.votesTotal)
}

// IncVote increments the vote counter for an answer value.
func (m *Metrics) IncVote(answer string) {
	m.votesTotal.WithLabelValues(answer).Inc()
}
