package cash

import (
	"github.com/cascadefund/cascade"
)

// TokenLedger is a view of the ledger restricted to a single token. It is
// what a distribution node is configured with.
type TokenLedger struct {
	ctrl   Controller
	ticker string
}

// Ticker returns the token this ledger moves.
func (l *TokenLedger) Ticker() string {
	return l.ticker
}

func (l *TokenLedger) Transfer(ctx cascade.Context, db cascade.KVStore, nonce int64, from, to cascade.Address, amount int64) error {
	return l.ctrl.Transfer(ctx, db, l.ticker, nonce, from, to, amount)
}

func (l *TokenLedger) TransferFrom(ctx cascade.Context, db cascade.KVStore, nonce int64, spender, from, to cascade.Address, amount int64) error {
	return l.ctrl.TransferFrom(ctx, db, l.ticker, nonce, spender, from, to, amount)
}

func (l *TokenLedger) BalanceOf(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error) {
	return l.ctrl.BalanceOf(db, l.ticker, owner)
}

func (l *TokenLedger) Nonce(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error) {
	return l.ctrl.Nonce(db, l.ticker, owner)
}
