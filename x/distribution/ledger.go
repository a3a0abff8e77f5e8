package distribution

import (
	"github.com/cascadefund/cascade"
)

// LedgerPort is the token ledger a node moves funds with. Every call is
// authorized using the conditions found in the context.
// Required functionality is implemented by the x/cash extension.
type LedgerPort interface {
	Transfer(ctx cascade.Context, db cascade.KVStore, nonce int64, from, to cascade.Address, amount int64) error
	TransferFrom(ctx cascade.Context, db cascade.KVStore, nonce int64, spender, from, to cascade.Address, amount int64) error
	BalanceOf(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error)
	Nonce(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error)
}

// LedgerResolver returns the ledger a node was configured with.
type LedgerResolver interface {
	Ledger(db cascade.ReadOnlyKVStore, ref string) (LedgerPort, error)
}

// LedgerResolverFunc is an adapter to allow the use of an ordinary
// function as a LedgerResolver.
type LedgerResolverFunc func(db cascade.ReadOnlyKVStore, ref string) (LedgerPort, error)

func (fn LedgerResolverFunc) Ledger(db cascade.ReadOnlyKVStore, ref string) (LedgerPort, error) {
	return fn(db, ref)
}
