package cascade

import (
	"encoding/json"

	"github.com/cascadefund/cascade/errors"
)

// Handler processes the messages routed to it, for example donations to
// a distribution node or transfers between ledger accounts.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without committing its effects.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around every handler of the host. It decides whether and
// with which context and store the rest of the chain is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	Data []byte
	Log  string
}

// DeliverResult is returned by a successful Deliver. Data holds the
// encoded result, such as the receipt of a donation. Log is for humans.
type DeliverResult struct {
	Data []byte
	Log  string
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis document. Every extension reads the JSON stored
// under its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the JSON stored under key into obj. A missing key
// leaves obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrEncoding, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension, such as ledger
// tokens or distribution nodes.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
