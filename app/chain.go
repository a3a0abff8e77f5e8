package app

import (
	"reflect"

	"github.com/cascadefund/cascade"
)

// Decorators is an ordered list of decorators waiting for the handler
// they will wrap. The first decorator sees a transaction first.
//
// The cascade host is assembled as
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		utils.NewMetrics(registry),
//		x.NewSignerDecorator(auth),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	chain []cascade.Decorator
}

// ChainDecorators starts a chain. Nil decorators, typed or not, are
// skipped so that optional ones can be passed unconditionally.
func ChainDecorators(chain ...cascade.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new chain with more decorators appended. d itself is
// left unchanged and can be extended differently.
func (d Decorators) Chain(more ...cascade.Decorator) Decorators {
	chain := make([]cascade.Decorator, len(d.chain), len(d.chain)+len(more))
	copy(chain, d.chain)
	return Decorators{chain: append(chain, withoutNil(more)...)}
}

func withoutNil(ds []cascade.Decorator) []cascade.Decorator {
	res := make([]cascade.Decorator, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, d)
	}
	return res
}

// WithHandler closes the chain with the handler processing the message.
func (d Decorators) WithHandler(h cascade.Handler) cascade.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{decorator: d.chain[i], next: h}
	}
	return h
}

// decorated is a handler calling decorator with next as the rest of the
// chain.
type decorated struct {
	decorator cascade.Decorator
	next      cascade.Handler
}

func (d decorated) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	return d.decorator.Check(ctx, store, tx, d.next)
}

func (d decorated) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	return d.decorator.Deliver(ctx, store, tx, d.next)
}
