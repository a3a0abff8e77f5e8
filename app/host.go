package app

import (
	"strings"
	"sync"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Host executes transactions and queries against a CommitStore. All
// calls are serialized, so a donation and its whole cascade is processed
// before the next transaction starts.
type Host struct {
	mu sync.Mutex

	name    string
	store   *CommitStore
	handler cascade.Handler
	queries cascade.QueryRouter
	logger  log.Logger

	// debug, if set, returns full error messages to the caller
	debug bool
}

// NewHost returns a host serving given handler and queries.
func NewHost(store *CommitStore, handler cascade.Handler, queries cascade.QueryRouter) (*Host, error) {
	name, err := loadName(store.CommittedStore())
	if err != nil {
		return nil, err
	}
	return &Host{
		name:    name,
		store:   store,
		handler: handler,
		queries: queries,
		logger:  cascade.DefaultLogger,
	}, nil
}

// WithLogger sets the logger passed to all handlers.
func (h *Host) WithLogger(logger log.Logger) *Host {
	h.logger = logger
	return h
}

// WithDebug sets the debug flag. When not running in debug mode errors not
// declared by this module are redacted.
func (h *Host) WithDebug(debug bool) *Host {
	h.debug = debug
	return h
}

// Name returns the name the host was initialized with. It is empty until
// the genesis was loaded.
func (h *Host) Name() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.name
}

// Height returns the number of commits.
func (h *Host) Height() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Height()
}

// InitChain loads the genesis into the deliver store. Genesis can be
// loaded only once. Call Commit to persist the result.
func (h *Host) InitChain(gen Genesis, init cascade.Initializer) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache := h.store.DeliverStore().CacheWrap()
	if err := saveName(cache, gen.Name); err != nil {
		cache.Discard()
		return err
	}
	if init != nil {
		if err := init.FromGenesis(gen.AppOptions, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	h.name = gen.Name
	h.logger.Info("genesis loaded", "name", gen.Name)
	return nil
}

// Check runs the transaction against the check store. State changes of a
// successful check are visible to following checks until the next commit.
func (h *Host) Check(ctx cascade.Context, tx cascade.Tx) (*cascade.CheckResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache := h.store.CheckStore().CacheWrap()
	res, err := h.handler.Check(h.context(ctx), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, errors.Redact(err, h.debug)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Redact(errors.Wrap(err, "write check cache"), h.debug)
	}
	return res, nil
}

// Deliver executes the transaction. Either all state changes of the
// transaction are applied or none.
func (h *Host) Deliver(ctx cascade.Context, tx cascade.Tx) (*cascade.DeliverResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache := h.store.DeliverStore().CacheWrap()
	res, err := h.handler.Deliver(h.context(ctx), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, errors.Redact(err, h.debug)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Redact(errors.Wrap(err, "write deliver cache"), h.debug)
	}
	return res, nil
}

// Commit persists all delivered transactions.
func (h *Host) Commit() (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	height, err := h.store.Commit()
	if err != nil {
		return height, err
	}
	h.logger.Debug("commit", "height", height)
	return height, nil
}

// Query gets data from the committed state. Path is the registered query
// path, optionally followed by "?" and a query mod, ie. "/wallets?prefix".
func (h *Host) Query(path string, data []byte) ([]cascade.Model, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	path, mod := splitPath(path)
	qh := h.queries.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	models, err := qh.Query(h.store.CommittedStore(), mod, data)
	if err != nil {
		return nil, errors.Redact(err, h.debug)
	}
	return models, nil
}

func (h *Host) context(ctx cascade.Context) cascade.Context {
	return cascade.WithLogger(ctx, h.logger.With("host", h.name))
}

// splitPath splits out the real path along with the query
// modifier (everything after the ?)
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}
