package utils

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// Savepoint runs the rest of the chain in a cache of the store. The cache
// is written only when the chain succeeds, so a donation failing in any
// node of the cascade leaves no partial payout behind.
//
// A zero Savepoint is a no-op. Enable it with OnCheck and OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ cascade.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Checker) (*cascade.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *cascade.CheckResult
	err := isolated(store, func(db cascade.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (*cascade.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *cascade.DeliverResult
	err := isolated(store, func(db cascade.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolated calls fn with a cache of store and writes the cache back only
// if fn succeeds. Stores that cannot be cached are passed as they are.
func isolated(store cascade.KVStore, fn func(cascade.KVStore) error) error {
	cacheable, ok := store.(cascade.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "savepoint")
}
