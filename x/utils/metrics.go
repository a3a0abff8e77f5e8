package utils

import (
	"strconv"
	"time"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a decorator that counts processed transactions and measures
// how long their handlers took. Transactions are labeled with the message
// path, the phase (check or deliver) and the result code.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ cascade.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator that registers its collectors
// with given registry.
func NewMetrics(registry prometheus.Registerer) Metrics {
	return Metrics{
		requests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "cascade_tx_total",
			Help: "Number of processed transactions",
		}, []string{"path", "phase", "code"}),
		duration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cascade_tx_duration_seconds",
			Help:    "Time spent processing a transaction",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "phase"}),
	}
}

func (m Metrics) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Checker) (*cascade.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(tx, "check", start, err)
	return res, err
}

func (m Metrics) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (*cascade.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(tx, "deliver", start, err)
	return res, err
}

func (m Metrics) observe(tx cascade.Tx, phase string, start time.Time, err error) {
	path := cascade.GetPath(tx)
	code, _ := errors.Info(err, false)
	m.requests.WithLabelValues(path, phase, codeLabel(code)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	if code == errors.SuccessCode {
		return "ok"
	}
	return strconv.FormatUint(uint64(code), 10)
}
