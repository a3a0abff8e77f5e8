package distribution

import (
	"context"
	"testing"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/cascadetest"
	"github.com/cascadefund/cascade/store"
	"github.com/cascadefund/cascade/x"
	"github.com/cascadefund/cascade/x/cash"
)

const ticker = "IOV"

// fixture is a store with a single token ledger that distribution nodes
// can be created on.
type fixture struct {
	t      testing.TB
	db     store.CacheableKVStore
	auth   x.ContextAuth
	cash   cash.Controller
	ctrl   Controller
	issuer cascade.Condition
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		db:     store.MemStore(),
		auth:   x.ContextAuth{Key: "auth"},
		issuer: cascadetest.NewCondition(),
	}
	f.cash = cash.NewController(f.auth)
	f.ctrl = NewController(f.auth, cashLedgers(f.cash), nil)
	if err := f.cash.CreateToken(f.db, ticker, f.issuer.Address()); err != nil {
		t.Fatalf("cannot create token: %s", err)
	}
	return f
}

func cashLedgers(c cash.Controller) LedgerResolver {
	return LedgerResolverFunc(func(db cascade.ReadOnlyKVStore, ref string) (LedgerPort, error) {
		l, err := c.Ledger(db, ref)
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}

// ctx returns a context authorized by given conditions.
func (f *fixture) ctx(signers ...cascade.Condition) cascade.Context {
	return f.auth.SetConditions(context.Background(), signers...)
}

// donor returns an account that owns amount of tokens and allows node to
// spend all of them.
func (f *fixture) donor(node cascade.Address, amount int64) cascade.Condition {
	f.t.Helper()
	donor := cascadetest.NewCondition()
	if err := f.cash.Mint(f.ctx(f.issuer), f.db, ticker, donor.Address(), amount); err != nil {
		f.t.Fatalf("cannot mint: %s", err)
	}
	nonce, err := f.cash.Nonce(f.db, ticker, donor.Address())
	if err != nil {
		f.t.Fatalf("cannot get nonce: %s", err)
	}
	if err := f.cash.Approve(f.ctx(donor), f.db, ticker, nonce, donor.Address(), node, amount); err != nil {
		f.t.Fatalf("cannot approve: %s", err)
	}
	return donor
}

func (f *fixture) node(name string, rs ...*Recipient) cascade.Address {
	f.t.Helper()
	conf, err := f.ctrl.Initialize(f.db, name, nil, ticker, rs)
	if err != nil {
		f.t.Fatalf("cannot initialize %q node: %s", name, err)
	}
	return conf.Address()
}

func (f *fixture) balance(addr cascade.Address) int64 {
	f.t.Helper()
	b, err := f.cash.BalanceOf(f.db, ticker, addr)
	if err != nil {
		f.t.Fatalf("cannot get balance: %s", err)
	}
	return b
}

// donate runs a donation in a cache wrap that is written only on success,
// the way a host runs a transaction.
func (f *fixture) donate(node cascade.Address, donor cascade.Condition, amount int64) (*Receipt, error) {
	cache := f.db.CacheWrap()
	rec, err := f.ctrl.Donate(f.ctx(donor), cache, node, donor.Address(), amount)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		f.t.Fatalf("cannot write: %s", err)
	}
	return rec, nil
}

func toAccount(name string, addr cascade.Address, pct uint32) *Recipient {
	return &Recipient{Name: name, Destination: &Destination{Kind: Account, Address: addr}, Percentage: pct}
}

func toNode(name string, addr cascade.Address, pct uint32) *Recipient {
	return &Recipient{Name: name, Destination: &Destination{Kind: Node, Address: addr}, Percentage: pct}
}
