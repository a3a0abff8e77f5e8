package cash

import (
	"math"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/orm"
	"github.com/cascadefund/cascade/x"
)

// Controller is the only way to modify the ledger state. All operations
// that move value check the authorization of the account they act for.
type Controller struct {
	auth       x.Authenticator
	tokens     orm.ModelBucket
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
}

// NewController returns a controller that uses given authenticator to
// verify who is allowed to act.
func NewController(auth x.Authenticator) Controller {
	return Controller{
		auth:       auth,
		tokens:     NewTokenBucket(),
		wallets:    NewWalletBucket(),
		allowances: NewAllowanceBucket(),
	}
}

// CreateToken declares a new token. It fails if the ticker is taken.
func (c Controller) CreateToken(db cascade.KVStore, ticker string, issuer cascade.Address) error {
	switch ok, err := c.tokens.Has(db, []byte(ticker)); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", ticker)
	}
	t := &Token{
		Metadata: &cascade.Metadata{Schema: 1},
		Ticker:   ticker,
		Issuer:   issuer,
	}
	return c.tokens.Put(db, []byte(ticker), t)
}

// Token returns the declaration of a token or ErrNotFound.
func (c Controller) Token(db cascade.ReadOnlyKVStore, ticker string) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, []byte(ticker), &t); err != nil {
		return nil, errors.Wrapf(err, "token %s", ticker)
	}
	return &t, nil
}

// Mint creates amount of new tokens on the destination account. The call
// must be authorized by the token issuer.
func (c Controller) Mint(ctx cascade.Context, db cascade.KVStore, ticker string, to cascade.Address, amount int64) error {
	t, err := c.Token(db, ticker)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, t.Issuer) {
		return errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	if amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	w, err := c.wallet(db, ticker, to)
	if err != nil {
		return err
	}
	if w.Balance, err = add(w.Balance, amount); err != nil {
		return err
	}
	return c.wallets.Put(db, WalletKey(ticker, to), w)
}

// Approve sets the amount spender is allowed to move out of the owner
// account. The call must be authorized by the owner.
func (c Controller) Approve(ctx cascade.Context, db cascade.KVStore, ticker string, nonce int64, owner, spender cascade.Address, amount int64) error {
	if _, err := c.Token(db, ticker); err != nil {
		return err
	}
	if amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative allowance")
	}
	if err := c.consumeNonce(ctx, db, ticker, owner, nonce); err != nil {
		return err
	}
	a := &Allowance{
		Metadata: &cascade.Metadata{Schema: 1},
		Ticker:   ticker,
		Owner:    owner,
		Spender:  spender,
		Amount:   amount,
	}
	return c.allowances.Put(db, AllowanceKey(ticker, owner, spender), a)
}

// Transfer moves amount from one account to another. The call must be
// authorized by the source account. A zero amount is a valid transfer.
func (c Controller) Transfer(ctx cascade.Context, db cascade.KVStore, ticker string, nonce int64, from, to cascade.Address, amount int64) error {
	if _, err := c.Token(db, ticker); err != nil {
		return err
	}
	if amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if err := c.consumeNonce(ctx, db, ticker, from, nonce); err != nil {
		return err
	}
	return c.move(db, ticker, from, to, amount)
}

// TransferFrom moves amount from one account to another using the
// allowance granted to the spender. The call must be authorized by the
// spender and the nonce is the spender's one.
func (c Controller) TransferFrom(ctx cascade.Context, db cascade.KVStore, ticker string, nonce int64, spender, from, to cascade.Address, amount int64) error {
	if _, err := c.Token(db, ticker); err != nil {
		return err
	}
	if amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if err := c.consumeNonce(ctx, db, ticker, spender, nonce); err != nil {
		return err
	}

	var a Allowance
	key := AllowanceKey(ticker, from, spender)
	switch err := c.allowances.One(db, key, &a); {
	case errors.ErrNotFound.Is(err):
		if amount > 0 {
			return errors.Wrap(errors.ErrInsufficientAmount, "no allowance")
		}
	case err != nil:
		return err
	default:
		if a.Amount < amount {
			return errors.Wrapf(errors.ErrInsufficientAmount, "allowance %d, want %d", a.Amount, amount)
		}
		a.Amount -= amount
		if err := c.allowances.Put(db, key, &a); err != nil {
			return err
		}
	}
	return c.move(db, ticker, from, to, amount)
}

// BalanceOf returns the balance of an account. Unknown accounts have a
// zero balance.
func (c Controller) BalanceOf(db cascade.ReadOnlyKVStore, ticker string, owner cascade.Address) (int64, error) {
	w, err := c.wallet(db, ticker, owner)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// Nonce returns the nonce expected with the next call authorized by given
// account.
func (c Controller) Nonce(db cascade.ReadOnlyKVStore, ticker string, owner cascade.Address) (int64, error) {
	w, err := c.wallet(db, ticker, owner)
	if err != nil {
		return 0, err
	}
	return w.Nonce, nil
}

// Allowance returns the amount spender may still move out of the owner
// account.
func (c Controller) Allowance(db cascade.ReadOnlyKVStore, ticker string, owner, spender cascade.Address) (int64, error) {
	var a Allowance
	switch err := c.allowances.One(db, AllowanceKey(ticker, owner, spender), &a); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return a.Amount, nil
}

// Ledger returns a view of the ledger restricted to the given token.
func (c Controller) Ledger(db cascade.ReadOnlyKVStore, ticker string) (*TokenLedger, error) {
	if _, err := c.Token(db, ticker); err != nil {
		return nil, err
	}
	return &TokenLedger{ctrl: c, ticker: ticker}, nil
}

// wallet loads a wallet or returns an empty one if the account is unknown.
func (c Controller) wallet(db cascade.ReadOnlyKVStore, ticker string, owner cascade.Address) (*Wallet, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	var w Wallet
	switch err := c.wallets.One(db, WalletKey(ticker, owner), &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{
			Metadata: &cascade.Metadata{Schema: 1},
			Ticker:   ticker,
			Owner:    owner,
		}, nil
	default:
		return nil, err
	}
}

// consumeNonce checks that the account authorized the call with the
// expected nonce and increments it.
func (c Controller) consumeNonce(ctx cascade.Context, db cascade.KVStore, ticker string, signer cascade.Address, nonce int64) error {
	if !c.auth.HasAddress(ctx, signer) {
		return errors.Wrapf(errors.ErrUnauthorized, "signature of %s missing", signer)
	}
	w, err := c.wallet(db, ticker, signer)
	if err != nil {
		return err
	}
	if w.Nonce != nonce {
		return errors.Wrapf(errors.ErrUnauthorized, "invalid nonce %d, want %d", nonce, w.Nonce)
	}
	if w.Nonce == math.MaxInt64 {
		return errors.Wrap(errors.ErrOverflow, "nonce")
	}
	w.Nonce++
	return c.wallets.Put(db, WalletKey(ticker, signer), w)
}

// move transfers the funds without any authorization check.
func (c Controller) move(db cascade.KVStore, ticker string, from, to cascade.Address, amount int64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	src, err := c.wallet(db, ticker, from)
	if err != nil {
		return err
	}
	if src.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Balance, amount)
	}
	src.Balance -= amount
	if err := c.wallets.Put(db, WalletKey(ticker, from), src); err != nil {
		return err
	}

	// Loaded after the source was saved so that a transfer to self
	// is a no-op.
	dst, err := c.wallet(db, ticker, to)
	if err != nil {
		return err
	}
	if dst.Balance, err = add(dst.Balance, amount); err != nil {
		return err
	}
	return c.wallets.Put(db, WalletKey(ticker, to), dst)
}

func add(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, errors.Wrap(errors.ErrOverflow, "balance")
	}
	return a + b, nil
}
