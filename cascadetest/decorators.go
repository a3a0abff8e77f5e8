package cascadetest

import "github.com/cascadefund/cascade"

// Calls counts the Check and Deliver calls received by a mock.
type Calls struct {
	check   int
	deliver int
}

func (c *Calls) CheckCallCount() int   { return c.check }
func (c *Calls) DeliverCallCount() int { return c.deliver }
func (c *Calls) CallCount() int        { return c.check + c.deliver }

// Decorator passes every call on to the next handler unless CheckErr or
// DeliverErr is set, in which case the chain stops there. Calls are
// counted either way.
type Decorator struct {
	Calls
	CheckErr   error
	DeliverErr error
}

var _ cascade.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx, next cascade.Checker) (*cascade.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (*cascade.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
