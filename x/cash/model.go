package cash

import (
	"regexp"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/orm"
)

var isTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,7}$`).MatchString

func validateTicker(ticker string) error {
	if !isTicker(ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", ticker)
	}
	return nil
}

func (t *Token) Validate() error {
	if err := t.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Append(
		errors.Field("Ticker", validateTicker(t.Ticker), "invalid ticker"),
		errors.Field("Issuer", t.Issuer.Validate(), "invalid issuer"),
	)
}

func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Ticker", validateTicker(w.Ticker))
	errs = errors.AppendField(errs, "Owner", w.Owner.Validate())
	if w.Balance < 0 {
		errs = errors.AppendField(errs, "Balance", errors.Wrap(errors.ErrModel, "negative balance"))
	}
	if w.Nonce < 0 {
		errs = errors.AppendField(errs, "Nonce", errors.Wrap(errors.ErrModel, "negative nonce"))
	}
	return errs
}

func (a *Allowance) Validate() error {
	if err := a.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Ticker", validateTicker(a.Ticker))
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", a.Spender.Validate())
	if a.Amount < 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrModel, "negative amount"))
	}
	return errs
}

// NewTokenBucket returns a bucket of tokens indexed by ticker.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Token{})
}

// NewWalletBucket returns a bucket of wallets indexed by ticker and owner.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallets", &Wallet{})
}

// NewAllowanceBucket returns a bucket of allowances indexed by ticker,
// owner and spender.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowances", &Allowance{})
}

// WalletKey returns the key a wallet is stored under. Addresses have a
// fixed length so the concatenation is unambiguous.
func WalletKey(ticker string, owner cascade.Address) []byte {
	key := make([]byte, 0, len(ticker)+1+len(owner))
	key = append(key, ticker...)
	key = append(key, '/')
	return append(key, owner...)
}

// AllowanceKey returns the key an allowance is stored under.
func AllowanceKey(ticker string, owner, spender cascade.Address) []byte {
	return append(WalletKey(ticker, owner), spender...)
}
