package tag

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/normalize"
)

// Metrics counts pipeline outcomes. A nil *Metrics records nothing.
type Metrics struct {
	lookups  *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	concepts *prometheus.HistogramVec
}

// NewMetrics creates the pipeline collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "termtag",
			Name:      "lookups_total",
			Help:      "Terminology lookups by task and outcome.",
		}, []string{"task", "outcome"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "termtag",
			Name:      "entries_dropped_total",
			Help:      "Termbase entries left out of the canonical table, by reason.",
		}, []string{"reason"}),
		concepts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "termtag",
			Name:      "concepts_per_lookup",
			Help:      "Number of concepts rendered per lookup.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"task"}),
	}
	reg.MustRegister(m.lookups, m.dropped, m.concepts)
	return m
}

func (m *Metrics) observe(task domain.Task, outcome string, concepts int) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(task.String(), outcome).Inc()
	if outcome == outcomeOK {
		m.concepts.WithLabelValues(task.String()).Observe(float64(concepts))
	}
}

func (m *Metrics) drop(d normalize.Drop) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(d.Reason.String()).Inc()
}
