package cash

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

var _ cascade.Msg = (*MintMsg)(nil)

// Path returns the routing path for this message
func (MintMsg) Path() string {
	return "cash/mint"
}

func (m *MintMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Ticker", validateTicker(m.Ticker))
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}

var _ cascade.Msg = (*ApproveMsg)(nil)

// Path returns the routing path for this message
func (ApproveMsg) Path() string {
	return "cash/approve"
}

func (m *ApproveMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Ticker", validateTicker(m.Ticker))
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Spender", m.Spender.Validate())
	if m.Nonce < 0 {
		errs = errors.AppendField(errs, "Nonce", errors.Wrap(errors.ErrInput, "negative nonce"))
	}
	if m.Amount < 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "negative allowance"))
	}
	return errs
}

var _ cascade.Msg = (*TransferMsg)(nil)

// Path returns the routing path for this message
func (TransferMsg) Path() string {
	return "cash/transfer"
}

// Validate allows zero amount transfers. Negative values are rejected.
func (m *TransferMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	errs = errors.AppendField(errs, "Ticker", validateTicker(m.Ticker))
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Nonce < 0 {
		errs = errors.AppendField(errs, "Nonce", errors.Wrap(errors.ErrInput, "negative nonce"))
	}
	if m.Amount < 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "negative amount"))
	}
	return errs
}
