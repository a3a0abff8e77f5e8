package cash

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

const optKey = "cash"

// Genesis is used to parse the json from genesis file. Addresses are in
// hex, not base64.
type Genesis struct {
	Tokens []struct {
		Ticker string          `json:"ticker"`
		Issuer cascade.Address `json:"issuer"`
	} `json:"tokens"`
	Wallets []struct {
		Ticker  string          `json:"ticker"`
		Address cascade.Address `json:"address"`
		Balance int64           `json:"balance"`
	} `json:"wallets"`
	Allowances []struct {
		Ticker  string          `json:"ticker"`
		Owner   cascade.Address `json:"owner"`
		Spender cascade.Address `json:"spender"`
		Amount  int64           `json:"amount"`
	} `json:"allowances"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ cascade.Initializer = Initializer{}

// FromGenesis will parse initial token and account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts cascade.Options, kv cascade.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	ctrl := NewController(nil)
	for i, t := range gen.Tokens {
		if err := ctrl.CreateToken(kv, t.Ticker, t.Issuer); err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
	}
	for i, w := range gen.Wallets {
		if _, err := ctrl.Token(kv, w.Ticker); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		wallet := &Wallet{
			Metadata: &cascade.Metadata{Schema: 1},
			Ticker:   w.Ticker,
			Owner:    w.Address,
			Balance:  w.Balance,
		}
		if err := ctrl.wallets.Put(kv, WalletKey(w.Ticker, w.Address), wallet); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
	}
	for i, a := range gen.Allowances {
		if _, err := ctrl.Token(kv, a.Ticker); err != nil {
			return errors.Wrapf(err, "allowance %d", i)
		}
		allowance := &Allowance{
			Metadata: &cascade.Metadata{Schema: 1},
			Ticker:   a.Ticker,
			Owner:    a.Owner,
			Spender:  a.Spender,
			Amount:   a.Amount,
		}
		if err := ctrl.allowances.Put(kv, AllowanceKey(a.Ticker, a.Owner, a.Spender), allowance); err != nil {
			return errors.Wrapf(err, "allowance %d", i)
		}
	}
	return nil
}
