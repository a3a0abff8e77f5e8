package utils

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// Recovery turns a panic of the rest of the chain into an ErrPanic and
// logs it. Put it right below Logging so that the failure is logged with
// the transaction too.
type Recovery struct{}

var _ cascade.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Checker) (_ *cascade.CheckResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (_ *cascade.DeliverResult, err error) {
	defer logPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

func logPanic(ctx cascade.Context, tx cascade.Tx, err *error) {
	if errors.ErrPanic.Is(*err) {
		cascade.GetLogger(ctx).Error("recovered from panic", "path", cascade.GetPath(tx), "err", *err)
	}
}
