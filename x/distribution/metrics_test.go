package distribution

import (
	"testing"

	"github.com/cascadefund/cascade/cascadetest"
	"github.com/cascadefund/cascade/cascadetest/assert"
	"github.com/cascadefund/cascade/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	f := newFixture(t)
	m := NewMetrics(prometheus.NewRegistry())
	f.ctrl = NewController(f.auth, cashLedgers(f.cash), m)

	acc := cascadetest.NewCondition().Address()
	child := f.node("child", toAccount("acc", acc, 50))
	root := f.node("root", toAccount("acc", acc, 10), toNode("child", child, 10))
	donor := f.donor(root, 2000)

	_, err := f.donate(root, donor, 1000)
	assert.Nil(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Donations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Continuations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Payouts.WithLabelValues("account")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payouts.WithLabelValues("node")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.PayoutAmount))

	assert.Nil(t, f.ctrl.SetChildren(f.ctx(), f.db, child, []*Recipient{
		toAccount("acc", acc, 10),
		toNode("loop", root, 10),
	}))
	_, err = f.donate(root, donor, 1000)
	assert.IsErr(t, errors.ErrCircularCascade, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cycles))

	// The aborted donation issued transfers before reaching the loop.
	// None of them was committed, so none of them is counted.
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Donations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Continuations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Payouts.WithLabelValues("account")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payouts.WithLabelValues("node")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.PayoutAmount))
}

func TestMetricsIgnoreLedgerFailures(t *testing.T) {
	f := newFixture(t)
	m := NewMetrics(prometheus.NewRegistry())
	f.ctrl = NewController(f.auth, cashLedgers(f.cash), m)

	acc := cascadetest.NewCondition().Address()
	child := f.node("child", toAccount("a", acc, 80), toAccount("b", acc, 80))
	root := f.node("root", toAccount("acc", acc, 10), toNode("child", child, 50))
	donor := f.donor(root, 1000)

	_, err := f.donate(root, donor, 1000)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.Donations))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Continuations))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PayoutAmount))
	assert.Equal(t, 0, testutil.CollectAndCount(m.Payouts))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	rec := &Receipt{Payouts: []*Payout{{Kind: Node, Amount: 1}}}
	m.donation(rec)
	m.continuation(rec)
	m.completed(nil)
	m.cycle()
}
