package distribution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the statistics of distributed donations. A nil value
// is valid and records nothing.
//
// Payouts and continuations are recorded from the receipt of a completed
// distribution, so transfers of an aborted donation are never counted.
// Cycles counts aborted distributions.
type Metrics struct {
	Donations     prometheus.Counter
	Continuations prometheus.Counter
	Payouts       *prometheus.CounterVec
	PayoutAmount  prometheus.Counter
	Cycles        prometheus.Counter
}

// NewMetrics creates the metrics and registers them with given registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		Donations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cascade_donations_total",
			Help: "Number of donations distributed",
		}),
		Continuations: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cascade_continuations_total",
			Help: "Number of times a node continued a completed distribution",
		}),
		Payouts: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_payouts_total",
			Help: "Number of transfers of completed distributions",
		}, []string{"kind"}),
		PayoutAmount: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cascade_payout_amount_total",
			Help: "Sum of all shares of completed distributions",
		}),
		Cycles: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "cascade_circular_cascades_total",
			Help: "Number of donations aborted because of a circular cascade",
		}),
	}
}

func (m *Metrics) donation(rec *Receipt) {
	if m != nil {
		m.Donations.Inc()
		m.completed(rec)
	}
}

func (m *Metrics) continuation(rec *Receipt) {
	if m != nil {
		m.Continuations.Inc()
		m.completed(rec)
	}
}

// completed records the payouts of a distribution that succeeded. Every
// payout to a node is followed by a continuation in that node.
func (m *Metrics) completed(rec *Receipt) {
	if m == nil || rec == nil {
		return
	}
	for _, p := range rec.Payouts {
		m.Payouts.WithLabelValues(p.Kind.String()).Inc()
		m.PayoutAmount.Add(float64(p.Amount))
		if p.Kind == Node {
			m.Continuations.Inc()
		}
	}
}

func (m *Metrics) cycle() {
	if m != nil {
		m.Cycles.Inc()
	}
}
