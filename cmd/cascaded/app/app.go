/*
Package app links together all the various components
to construct the cascaded application.
*/
package app

import (
	"io"
	"path/filepath"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/app"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/store"
	"github.com/cascadefund/cascade/x"
	"github.com/cascadefund/cascade/x/cash"
	"github.com/cascadefund/cascade/x/distribution"
	"github.com/cascadefund/cascade/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication used by all extensions. The
// conditions of a transaction are declared by its submitter and placed in
// the context by the signer decorator.
func Authenticator() x.ContextAuth {
	return x.ContextAuth{Key: "signers"}
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(auth x.Delegator, registry prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(registry),
		x.NewSignerDecorator(auth).Reserve(distribution.ConditionExt),
		// on Check, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
	)
}

// Ledgers resolves the ledger reference of a node to the cash token with
// the same ticker.
func Ledgers(ctrl cash.Controller) distribution.LedgerResolver {
	return distribution.LedgerResolverFunc(func(db cascade.ReadOnlyKVStore, ticker string) (distribution.LedgerPort, error) {
		l, err := ctrl.Ledger(db, ticker)
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}

// Router returns a router dispatching to the cash and distribution
// handlers.
func Router(auth x.Delegator, m *distribution.Metrics) *app.Router {
	r := app.NewRouter()
	ledger := cash.NewController(auth)
	cash.RegisterRoutes(r, auth, ledger)
	distribution.RegisterRoutes(r, auth, distribution.NewController(auth, Ledgers(ledger), m))
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/tokens", "/wallets", "/allowances", "/nodes" and "/recipients"
func QueryRouter() cascade.QueryRouter {
	r := cascade.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		distribution.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions. Tokens
// are created before the nodes that use them.
func Initializers() cascade.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&distribution.Initializer{Ledgers: Ledgers(cash.NewController(nil))},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. Metrics are registered with given registry, which may be nil.
func Stack(registry prometheus.Registerer) cascade.Handler {
	auth := Authenticator()
	var m *distribution.Metrics
	if registry != nil {
		m = distribution.NewMetrics(registry)
	}
	return Chain(auth, registry).WithHandler(Router(auth, m))
}

// Options configure the application.
type Options struct {
	// DBPath is the directory of the leveldb database. An empty path uses
	// an in memory database.
	DBPath   string
	Logger   log.Logger
	Registry prometheus.Registerer
	Debug    bool
}

// Application opens the database and constructs a host serving the
// standard stack. Close the returned closer to release the database.
func Application(opts Options) (*app.Host, io.Closer, error) {
	db, err := openDB(opts.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cs, err := app.NewCommitStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	host, err := app.NewHost(cs, Stack(opts.Registry), QueryRouter())
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if opts.Logger != nil {
		host = host.WithLogger(opts.Logger)
	}
	return host.WithDebug(opts.Debug), db, nil
}

func openDB(dbPath string) (*store.LevelDB, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return store.MemLevelDB()
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}
	return store.OpenLevelDB(path)
}
