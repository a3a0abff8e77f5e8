package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/orm"
	"github.com/cascadefund/cascade/x"
)

// Controller manages distribution nodes. A node is Uninitialized until
// Initialize is called for it and Active afterwards.
type Controller struct {
	auth     x.Delegator
	ledgers  LedgerResolver
	nodes    orm.ModelBucket
	registry RecipientRegistry
	engine   Engine
	metrics  *Metrics
}

// NewController returns a controller that uses given delegator to act on
// the ledger on behalf of the nodes. Metrics can be nil.
func NewController(auth x.Delegator, ledgers LedgerResolver, m *Metrics) Controller {
	return Controller{
		auth:     auth,
		ledgers:  ledgers,
		nodes:    NewNodeBucket(),
		registry: NewRecipientRegistry(),
		engine:   NewEngine(m),
		metrics:  m,
	}
}

// Initialize creates a node. Once initialized, the node configuration
// cannot be changed and a second call fails with ErrState.
func (c Controller) Initialize(db cascade.KVStore, name string, admin cascade.Address, ledger string, rs []*Recipient) (*NodeConfiguration, error) {
	conf := &NodeConfiguration{
		Metadata: &cascade.Metadata{Schema: 1},
		Name:     name,
		Admin:    admin,
		Ledger:   ledger,
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	addr := conf.Address()
	switch ok, err := c.nodes.Has(db, addr); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrState, "node %q already initialized", name)
	}
	if _, err := c.ledgers.Ledger(db, ledger); err != nil {
		return nil, errors.Wrapf(err, "ledger %q", ledger)
	}
	if err := c.nodes.Put(db, addr, conf); err != nil {
		return nil, err
	}
	if err := c.registry.SetChildren(db, addr, rs); err != nil {
		return nil, err
	}
	return conf, nil
}

// Node returns the configuration of an initialized node. It fails with
// ErrConfiguration if the node was not initialized.
func (c Controller) Node(db cascade.ReadOnlyKVStore, node cascade.Address) (*NodeConfiguration, error) {
	var conf NodeConfiguration
	switch err := c.nodes.One(db, node, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrConfiguration, "node %s", node)
	default:
		return nil, err
	}
}

// Donate moves amount from the donor to the node and distributes the
// whole node balance. The donor must have approved the node as a spender.
// Donor authorization must be verified by the caller.
func (c Controller) Donate(ctx cascade.Context, db cascade.KVStore, node, donor cascade.Address, amount int64) (*Receipt, error) {
	if amount < 0 {
		return nil, errors.Wrap(errors.ErrAmount, "negative donation")
	}
	conf, ledger, err := c.load(db, node)
	if err != nil {
		return nil, err
	}
	ctx = c.auth.SetConditions(ctx, NodeCondition(conf.Name))

	nonce, err := ledger.Nonce(db, node)
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	if err := ledger.TransferFrom(ctx, db, nonce, node, donor, node, amount); err != nil {
		return nil, errors.Wrap(err, "cannot collect donation")
	}

	rec := newReceipt(ctx, node, donor, amount)
	if err := c.distribute(ctx, db, conf, ledger, NewAncestorChain(node), rec); err != nil {
		return nil, err
	}
	c.metrics.donation(rec)
	cascade.GetLogger(ctx).Info("donation distributed",
		"node", conf.Name, "amount", amount, "payouts", len(rec.Payouts))
	return rec, nil
}

// ContinueDistribution distributes the balance of a node that received a
// share from the last node of the chain. The node is appended to the chain
// before its recipients are paid.
func (c Controller) ContinueDistribution(ctx cascade.Context, db cascade.KVStore, node cascade.Address, share int64, chain AncestorChain) (*Receipt, error) {
	rec := newReceipt(ctx, node, chain.Last(), share)
	if err := c.continueDistribution(ctx, db, node, share, chain, rec); err != nil {
		return nil, err
	}
	c.metrics.continuation(rec)
	return rec, nil
}

func (c Controller) continueDistribution(ctx cascade.Context, db cascade.KVStore, node cascade.Address, share int64, chain AncestorChain, rec *Receipt) error {
	if chain.Contains(node) {
		c.metrics.cycle()
		return errors.Wrapf(errors.ErrCircularCascade, "node %s already visited", node)
	}
	conf, ledger, err := c.load(db, node)
	if err != nil {
		return err
	}
	ctx = c.auth.SetConditions(ctx, NodeCondition(conf.Name))
	cascade.GetLogger(ctx).Debug("continue distribution", "node", conf.Name, "share", share, "depth", chain.Len())
	return c.distribute(ctx, db, conf, ledger, chain.Extend(node), rec)
}

// distribute splits the current node balance between its recipients. The
// context must authorize the node.
func (c Controller) distribute(ctx cascade.Context, db cascade.KVStore, conf *NodeConfiguration, ledger LedgerPort, chain AncestorChain, rec *Receipt) error {
	node := conf.Address()
	recipients, err := c.registry.GetChildren(db, node)
	if err != nil {
		return err
	}
	balance, err := ledger.BalanceOf(db, node)
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	return c.engine.Disperse(ctx, db, Dispersal{
		Node:       node,
		Pool:       balance,
		Recipients: recipients,
		Chain:      chain,
		Ledger:     ledger,
		Continue: func(ctx cascade.Context, child cascade.Address, share int64, chain AncestorChain) error {
			return c.continueDistribution(ctx, db, child, share, chain, rec)
		},
	}, rec)
}

// SetChildren replaces the recipients of an initialized node. If the node
// has an admin, the admin must authorize the change.
func (c Controller) SetChildren(ctx cascade.Context, db cascade.KVStore, node cascade.Address, rs []*Recipient) error {
	conf, err := c.Node(db, node)
	if err != nil {
		return err
	}
	if len(conf.Admin) != 0 && !c.auth.HasAddress(ctx, conf.Admin) {
		return errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return c.registry.SetChildren(db, node, rs)
}

// GetChildren returns the recipients of a node. An uninitialized node has
// no recipients.
func (c Controller) GetChildren(db cascade.ReadOnlyKVStore, node cascade.Address) ([]*Recipient, error) {
	return c.registry.GetChildren(db, node)
}

func (c Controller) load(db cascade.ReadOnlyKVStore, node cascade.Address) (*NodeConfiguration, LedgerPort, error) {
	conf, err := c.Node(db, node)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := c.ledgers.Ledger(db, conf.Ledger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "node %q ledger", conf.Name)
	}
	return conf, ledger, nil
}

func newReceipt(ctx cascade.Context, node, donor cascade.Address, amount int64) *Receipt {
	id, _ := cascade.GetDonationID(ctx)
	return &Receipt{
		Metadata:   &cascade.Metadata{Schema: 1},
		DonationID: id,
		Node:       node,
		Donor:      donor,
		Amount:     amount,
	}
}
