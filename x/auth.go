package x

import (
	"context"
	"fmt"

	"github.com/cascadefund/cascade"
)

// Authenticator tells which conditions authorize the current call. Ledger
// and distribution handlers receive one in their constructor and never
// read signatures themselves.
type Authenticator interface {
	// GetConditions returns the fulfilled conditions, main signer first.
	GetConditions(cascade.Context) []cascade.Condition
	// HasAddress reports whether the address of any fulfilled condition
	// is addr.
	HasAddress(cascade.Context, cascade.Address) bool
}

// Delegator is an Authenticator that can replace the set of fulfilled
// conditions for the rest of a call. A distribution node uses it to act
// with its own authority when it moves its balance.
type Delegator interface {
	Authenticator
	SetConditions(ctx cascade.Context, conds ...cascade.Condition) cascade.Context
}

// ContextAuth keeps the fulfilled conditions in the context under Key.
// Conditions set with SetConditions replace the ones set before under the
// same key.
type ContextAuth struct {
	Key string
}

var _ Delegator = ContextAuth{}

type authKey string

// SetConditions returns a context in which conds, and only conds, are
// fulfilled.
func (a ContextAuth) SetConditions(ctx cascade.Context, conds ...cascade.Condition) cascade.Context {
	return context.WithValue(ctx, authKey(a.Key), conds)
}

// GetConditions returns all conditions set with the same key.
func (a ContextAuth) GetConditions(ctx cascade.Context) []cascade.Condition {
	val := ctx.Value(authKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]cascade.Condition)
	if !ok {
		panic(fmt.Sprintf("context auth %q holds %T", a.Key, val))
	}
	return conds
}

// HasAddress returns true if the address of any set condition matches.
func (a ContextAuth) HasAddress(ctx cascade.Context, addr cascade.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx cascade.Context, auth Authenticator) []cascade.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]cascade.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}
