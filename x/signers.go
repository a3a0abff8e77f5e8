package x

import (
	"fmt"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// SignedTx is a transaction that declares the conditions that authorized
// it. Verifying those declarations (signatures, keys) happens before a
// transaction is handed to the host.
type SignedTx interface {
	cascade.Tx
	GetSigners() []cascade.Condition
}

// SignerDecorator makes the conditions declared by a SignedTx available to
// all handlers down the stack. Their addresses are added to the log
// context.
type SignerDecorator struct {
	auth      Delegator
	allowNone bool
	reserved  map[string]bool
}

var _ cascade.Decorator = SignerDecorator{}

// NewSignerDecorator returns a decorator that requires at least one signer.
func NewSignerDecorator(auth Delegator) SignerDecorator {
	return SignerDecorator{auth: auth}
}

// AllowMissingSigs allows us to pass along transactions with no signers.
func (d SignerDecorator) AllowMissingSigs() SignerDecorator {
	d.allowNone = true
	return d
}

// Reserve rejects transactions declaring a signer with one of given
// condition extensions. Use it for conditions that only the host grants,
// such as the conditions extensions act with.
func (d SignerDecorator) Reserve(exts ...string) SignerDecorator {
	reserved := make(map[string]bool, len(d.reserved)+len(exts))
	for ext := range d.reserved {
		reserved[ext] = true
	}
	for _, ext := range exts {
		reserved[ext] = true
	}
	d.reserved = reserved
	return d
}

func (d SignerDecorator) Check(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Checker) (*cascade.CheckResult, error) {
	ctx, err := d.withSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

func (d SignerDecorator) Deliver(ctx cascade.Context, store cascade.KVStore, tx cascade.Tx, next cascade.Deliverer) (*cascade.DeliverResult, error) {
	ctx, err := d.withSigners(ctx, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d SignerDecorator) withSigners(ctx cascade.Context, tx cascade.Tx) (cascade.Context, error) {
	var signers []cascade.Condition
	if stx, ok := tx.(SignedTx); ok {
		signers = stx.GetSigners()
	}
	for i, s := range signers {
		ext, _, _, err := s.Parse()
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
		if d.reserved[ext] {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "signer %d: %q conditions cannot sign", i, ext)
		}
	}
	if len(signers) == 0 && !d.allowNone {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	ctx = d.auth.SetConditions(ctx, signers...)
	return cascade.WithLogInfo(ctx, "signers", fmt.Sprint(GetAddresses(ctx, d.auth))), nil
}
