package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
)

// Share returns the part of the pool that a recipient with given
// percentage receives. The result is rounded down so that the sum of all
// shares never exceeds the pool.
func Share(pool int64, percentage uint32) int64 {
	if pool <= 0 || percentage == 0 {
		return 0
	}
	p := int64(percentage)
	// Split to avoid overflow of pool * p.
	return pool/100*p + pool%100*p/100
}

// ContinueFunc continues the distribution in a child node that has just
// received its share.
type ContinueFunc func(ctx cascade.Context, child cascade.Address, share int64, chain AncestorChain) error

// Dispersal describes the distribution of a single node balance.
type Dispersal struct {
	// Node is the distributing node. The context must authorize it.
	Node cascade.Address
	// Pool is the amount the shares are computed from.
	Pool       int64
	Recipients []*Recipient
	// Chain must contain Node as its last element.
	Chain    AncestorChain
	Ledger   LedgerPort
	Continue ContinueFunc
}

// Engine splits a node balance between its recipients.
type Engine struct {
	metrics *Metrics
}

func NewEngine(m *Metrics) Engine {
	return Engine{metrics: m}
}

// Disperse transfers to every recipient its share of the pool, in the
// order of the recipients list. Node recipients continue the distribution
// before the next recipient is paid. Any failure aborts the distribution
// and the caller must discard all changes made to the store.
func (e Engine) Disperse(ctx cascade.Context, db cascade.KVStore, d Dispersal, rec *Receipt) error {
	log := cascade.GetLogger(ctx)
	depth := uint32(d.Chain.Len() - 1)

	for i, r := range d.Recipients {
		if r == nil || r.Destination == nil {
			return errors.Wrapf(errors.ErrRegistryRead, "recipient %d has no destination", i)
		}
		share := Share(d.Pool, r.Percentage)
		dest := r.Destination.Address

		switch r.Destination.Kind {
		case Account:
			if err := e.transfer(ctx, db, d, dest, share); err != nil {
				return errors.Wrapf(err, "recipient %q", r.Name)
			}
		case Node:
			if d.Chain.Contains(dest) {
				e.metrics.cycle()
				log.Info("circular cascade", "recipient", r.Name, "node", dest, "chain", d.Chain)
				return errors.Wrapf(errors.ErrCircularCascade, "recipient %q: node %s already visited", r.Name, dest)
			}
			if err := e.transfer(ctx, db, d, dest, share); err != nil {
				return errors.Wrapf(err, "recipient %q", r.Name)
			}
		default:
			return errors.Wrapf(errors.ErrRegistryRead, "recipient %q: unknown destination kind %d", r.Name, r.Destination.Kind)
		}

		log.Debug("payout", "recipient", r.Name, "to", dest, "amount", share, "depth", depth)
		if rec != nil {
			rec.Payouts = append(rec.Payouts, &Payout{
				From:      d.Node,
				To:        dest,
				Recipient: r.Name,
				Amount:    share,
				Depth:     depth,
				Kind:      r.Destination.Kind,
			})
		}

		if r.Destination.Kind == Node {
			if err := d.Continue(ctx, dest, share, d.Chain); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e Engine) transfer(ctx cascade.Context, db cascade.KVStore, d Dispersal, to cascade.Address, amount int64) error {
	nonce, err := d.Ledger.Nonce(db, d.Node)
	if err != nil {
		return errors.Wrap(err, "nonce")
	}
	return d.Ledger.Transfer(ctx, db, nonce, d.Node, to, amount)
}
