/*
We pass context through context.Context between
app, middleware, and handlers. To do so, cascade defines
some common keys to store info, such as the logger. Each
extension, such as auth, may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T
that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/

package cascade

import (
	"context"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the cascade module

const (
	contextKeyLogger contextKey = iota
	contextKeyDonation
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

// WithLogger sets the logger for this context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	if ctx == nil {
		return DefaultLogger
	}
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithDonationID attaches the correlation id of the donation being
// processed. All log lines of the cascade carry it.
func WithDonationID(ctx Context, id string) Context {
	ctx = context.WithValue(ctx, contextKeyDonation, id)
	return WithLogInfo(ctx, "donation", id)
}

// GetDonationID returns the correlation id of the donation currently
// processed, if any.
func GetDonationID(ctx Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	val, ok := ctx.Value(contextKeyDonation).(string)
	return val, ok
}
