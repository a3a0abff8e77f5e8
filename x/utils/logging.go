package utils

import (
	"time"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one log entry per processed transaction, carrying the
// message path and the time the rest of the chain took. Failed
// transactions are logged as errors together with their code. Successful
// deliveries are logged as info, successful checks only as debug.
type Logging struct{}

var _ cascade.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Checker) (*cascade.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logFailure(logger, "check failed", err)
	} else {
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (*cascade.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logFailure(logger, "deliver failed", err)
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx cascade.Context, tx cascade.Tx, start time.Time) log.Logger {
	return cascade.GetLogger(ctx).With(
		"path", cascade.GetPath(tx),
		"duration", time.Since(start),
	)
}

// logFailure never redacts the error. Logs stay on the node.
func logFailure(logger log.Logger, msg string, err error) {
	code, _ := errors.Info(err, true)
	logger.Error(msg, "code", code, "err", err)
}
