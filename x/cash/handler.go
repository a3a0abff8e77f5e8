package cash

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r cascade.Registry, auth x.Authenticator, control Controller) {
	r.Handle(MintMsg{}.Path(), NewMintHandler(auth, control))
	r.Handle(ApproveMsg{}.Path(), NewApproveHandler(auth, control))
	r.Handle(TransferMsg{}.Path(), NewTransferHandler(auth, control))
}

// RegisterQuery will register the buckets as "/tokens", "/wallets" and
// "/allowances"
func RegisterQuery(qr cascade.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
	NewWalletBucket().Register("wallets", qr)
	NewAllowanceBucket().Register("allowances", qr)
}

// MintHandler creates new tokens.
type MintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ cascade.Handler = MintHandler{}

func NewMintHandler(auth x.Authenticator, control Controller) MintHandler {
	return MintHandler{auth: auth, control: control}
}

func (h MintHandler) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &cascade.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Mint(ctx, store, msg.Ticker, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &cascade.DeliverResult{}, nil
}

func (h MintHandler) validate(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	t, err := h.control.Token(store, msg.Ticker)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, t.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	return &msg, nil
}

// ApproveHandler sets allowances.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ cascade.Handler = ApproveHandler{}

func NewApproveHandler(auth x.Authenticator, control Controller) ApproveHandler {
	return ApproveHandler{auth: auth, control: control}
}

// Check verifies the message is well formed and signed by the owner. The
// nonce is verified only on delivery.
func (h ApproveHandler) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	var msg ApproveMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &cascade.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	var msg ApproveMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.control.Approve(ctx, store, msg.Ticker, msg.Nonce, msg.Owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &cascade.DeliverResult{}, nil
}

// TransferHandler moves tokens between accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ cascade.Handler = TransferHandler{}

func NewTransferHandler(auth x.Authenticator, control Controller) TransferHandler {
	return TransferHandler{auth: auth, control: control}
}

func (h TransferHandler) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	var msg TransferMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &cascade.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	var msg TransferMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.control.Transfer(ctx, store, msg.Ticker, msg.Nonce, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &cascade.DeliverResult{}, nil
}
