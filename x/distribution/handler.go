package distribution

import (
	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/x"
	"github.com/google/uuid"
)

// RegisterQuery registers node and recipient buckets for querying.
func RegisterQuery(qr cascade.QueryRouter) {
	NewNodeBucket().Register("nodes", qr)
	NewRecipientBucket().Register("recipients", qr)
}

// RegisterRoutes registers handlers for distribution message processing.
func RegisterRoutes(r cascade.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathInitializeMsg, &initializeHandler{ctrl: ctrl})
	r.Handle(pathDonateMsg, &donateHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathContinueMsg, &continueHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathSetChildrenMsg, &setChildrenHandler{ctrl: ctrl})
}

type initializeHandler struct {
	ctrl Controller
}

func (h *initializeHandler) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	var msg InitializeMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &cascade.CheckResult{}, nil
}

func (h *initializeHandler) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	var msg InitializeMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := h.ctrl.Initialize(db, msg.Name, msg.Admin, msg.Ledger, msg.Recipients)
	if err != nil {
		return nil, err
	}
	return &cascade.DeliverResult{Data: conf.Address()}, nil
}

type donateHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *donateHandler) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &cascade.CheckResult{}, nil
}

func (h *donateHandler) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ctx = cascade.WithDonationID(ctx, uuid.New().String())
	rec, err := h.ctrl.Donate(ctx, db, msg.Node, msg.Donor, msg.Amount)
	if err != nil {
		return nil, err
	}
	raw, err := cascade.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "receipt")
	}
	return &cascade.DeliverResult{Data: raw, Log: rec.DonationID}, nil
}

func (h *donateHandler) validate(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*DonateMsg, error) {
	var msg DonateMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Donor) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "donor signature missing")
	}
	if _, err := h.ctrl.Node(db, msg.Node); err != nil {
		return nil, err
	}
	return &msg, nil
}

// continueHandler allows to resume a distribution from outside of a
// donation. It is accepted only if the last node of the chain lists the
// target node as a recipient and the last node authorized the message.
// A node authorizes either with its own condition, which only the host can
// put in the context, or through the signature of its admin. A node
// without an admin cannot be continued by a transaction.
type continueHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *continueHandler) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &cascade.CheckResult{}, nil
}

func (h *continueHandler) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	msg, chain, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ctx = cascade.WithDonationID(ctx, uuid.New().String())
	rec, err := h.ctrl.ContinueDistribution(ctx, db, msg.Node, msg.Share, chain)
	if err != nil {
		return nil, err
	}
	raw, err := cascade.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "receipt")
	}
	return &cascade.DeliverResult{Data: raw, Log: rec.DonationID}, nil
}

func (h *continueHandler) validate(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*ContinueMsg, AncestorChain, error) {
	var msg ContinueMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, AncestorChain{}, errors.Wrap(err, "load msg")
	}
	chain, err := ChainFromBytes(msg.Chain)
	if err != nil {
		return nil, AncestorChain{}, err
	}
	if chain.Contains(msg.Node) {
		return nil, AncestorChain{}, errors.Wrapf(errors.ErrCircularCascade, "node %s already visited", msg.Node)
	}

	parent, err := h.ctrl.Node(db, chain.Last())
	if err != nil {
		return nil, AncestorChain{}, errors.Wrap(err, "parent")
	}
	if !h.authorizedBy(ctx, parent) {
		return nil, AncestorChain{}, errors.Wrapf(errors.ErrUnauthorized, "not authorized by %q", parent.Name)
	}
	children, err := h.ctrl.GetChildren(db, chain.Last())
	if err != nil {
		return nil, AncestorChain{}, err
	}
	if !listsNode(children, msg.Node) {
		return nil, AncestorChain{}, errors.Wrapf(errors.ErrUnauthorized, "node %s is not a recipient of %s", msg.Node, parent.Name)
	}
	return &msg, chain, nil
}

func (h *continueHandler) authorizedBy(ctx cascade.Context, conf *NodeConfiguration) bool {
	if h.auth.HasAddress(ctx, conf.Address()) {
		return true
	}
	return len(conf.Admin) != 0 && h.auth.HasAddress(ctx, conf.Admin)
}

func listsNode(rs []*Recipient, node cascade.Address) bool {
	for _, r := range rs {
		if r.Destination != nil && r.Destination.Kind == Node && r.Destination.Address.Equals(node) {
			return true
		}
	}
	return false
}

type setChildrenHandler struct {
	ctrl Controller
}

func (h *setChildrenHandler) Check(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.CheckResult, error) {
	var msg SetChildrenMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.ctrl.Node(db, msg.Node); err != nil {
		return nil, err
	}
	return &cascade.CheckResult{}, nil
}

func (h *setChildrenHandler) Deliver(ctx cascade.Context, db cascade.KVStore, tx cascade.Tx) (*cascade.DeliverResult, error) {
	var msg SetChildrenMsg
	if err := cascade.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.SetChildren(ctx, db, msg.Node, msg.Recipients); err != nil {
		return nil, err
	}
	return &cascade.DeliverResult{}, nil
}
