package distribution

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/cascadetest"
	"github.com/cascadefund/cascade/cascadetest/assert"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/store"
)

func TestShare(t *testing.T) {
	cases := map[string]struct {
		pool       int64
		percentage uint32
		want       int64
	}{
		"zero pool":          {pool: 0, percentage: 50, want: 0},
		"zero percentage":    {pool: 1000, percentage: 0, want: 0},
		"whole pool":         {pool: 1000, percentage: 100, want: 1000},
		"exact":              {pool: 1000, percentage: 30, want: 300},
		"rounded down":       {pool: 999, percentage: 10, want: 99},
		"less than one":      {pool: 9, percentage: 10, want: 0},
		"max pool":           {pool: math.MaxInt64, percentage: 100, want: math.MaxInt64},
		"max pool half":      {pool: math.MaxInt64, percentage: 50, want: math.MaxInt64 / 2},
		"max pool one third": {pool: math.MaxInt64, percentage: 33, want: 3043712772162076016},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, Share(tc.pool, tc.percentage))
		})
	}
}

func TestShareIsFloorOfProduct(t *testing.T) {
	pools := []int64{0, 1, 7, 99, 100, 101, 1000, 123456789, math.MaxInt64 - 1, math.MaxInt64}
	for _, pool := range pools {
		var sum int64
		for p := uint32(0); p <= 100; p++ {
			want := new(big.Int).Mul(big.NewInt(pool), big.NewInt(int64(p)))
			want.Div(want, big.NewInt(100))
			got := Share(pool, p)
			if want.Int64() != got {
				t.Fatalf("pool %d, percentage %d: want %s, got %d", pool, p, want, got)
			}
			if p == 30 || p == 70 {
				sum += got
			}
		}
		if sum > pool {
			t.Fatalf("pool %d: shares sum %d exceed the pool", pool, sum)
		}
	}
}

// recordingLedger is a LedgerPort that keeps balances in memory and
// records every transfer.
type recordingLedger struct {
	balances  map[string]int64
	transfers []string
	failOn    string
}

func (l *recordingLedger) Transfer(ctx cascade.Context, db cascade.KVStore, nonce int64, from, to cascade.Address, amount int64) error {
	if l.failOn == to.String() {
		return errors.Wrap(errors.ErrInsufficientAmount, "test failure")
	}
	l.transfers = append(l.transfers, fmt.Sprintf("%s>%s:%d", from, to, amount))
	l.balances[from.String()] -= amount
	l.balances[to.String()] += amount
	return nil
}

func (l *recordingLedger) TransferFrom(ctx cascade.Context, db cascade.KVStore, nonce int64, spender, from, to cascade.Address, amount int64) error {
	return l.Transfer(ctx, db, nonce, from, to, amount)
}

func (l *recordingLedger) BalanceOf(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error) {
	return l.balances[owner.String()], nil
}

func (l *recordingLedger) Nonce(db cascade.ReadOnlyKVStore, owner cascade.Address) (int64, error) {
	return 0, nil
}

func TestEngineDisperse(t *testing.T) {
	node := cascadetest.NewCondition().Address()
	child := cascadetest.NewCondition().Address()
	acc1 := cascadetest.NewCondition().Address()
	acc2 := cascadetest.NewCondition().Address()

	cases := map[string]struct {
		recipients    []*Recipient
		chain         AncestorChain
		failOn        cascade.Address
		wantErr       *errors.Error
		wantTransfers []string
		wantContinue  int
	}{
		"empty list": {
			recipients:    nil,
			chain:         NewAncestorChain(node),
			wantTransfers: nil,
		},
		"accounts in order": {
			recipients: []*Recipient{
				{Name: "one", Destination: &Destination{Kind: Account, Address: acc1}, Percentage: 10},
				{Name: "two", Destination: &Destination{Kind: Account, Address: acc2}, Percentage: 30},
			},
			chain: NewAncestorChain(node),
			wantTransfers: []string{
				fmt.Sprintf("%s>%s:100", node, acc1),
				fmt.Sprintf("%s>%s:300", node, acc2),
			},
		},
		"zero percentage is transferred": {
			recipients: []*Recipient{
				{Name: "zero", Destination: &Destination{Kind: Account, Address: acc1}, Percentage: 0},
			},
			chain:         NewAncestorChain(node),
			wantTransfers: []string{fmt.Sprintf("%s>%s:0", node, acc1)},
		},
		"node recipient continues before next sibling": {
			recipients: []*Recipient{
				{Name: "child", Destination: &Destination{Kind: Node, Address: child}, Percentage: 50},
				{Name: "acc", Destination: &Destination{Kind: Account, Address: acc1}, Percentage: 10},
			},
			chain: NewAncestorChain(node),
			wantTransfers: []string{
				fmt.Sprintf("%s>%s:500", node, child),
				fmt.Sprintf("%s>%s:1", child, acc2),
				fmt.Sprintf("%s>%s:100", node, acc1),
			},
			wantContinue: 1,
		},
		"node already in chain": {
			recipients: []*Recipient{
				{Name: "acc", Destination: &Destination{Kind: Account, Address: acc1}, Percentage: 10},
				{Name: "loop", Destination: &Destination{Kind: Node, Address: child}, Percentage: 50},
			},
			chain:         NewAncestorChain(child).Extend(node),
			wantErr:       errors.ErrCircularCascade,
			wantTransfers: []string{fmt.Sprintf("%s>%s:100", node, acc1)},
		},
		"unknown kind": {
			recipients: []*Recipient{
				{Name: "bad", Destination: &Destination{Kind: 42, Address: acc1}, Percentage: 10},
			},
			chain:   NewAncestorChain(node),
			wantErr: errors.ErrRegistryRead,
		},
		"ledger failure": {
			recipients: []*Recipient{
				{Name: "acc", Destination: &Destination{Kind: Account, Address: acc1}, Percentage: 10},
			},
			chain:   NewAncestorChain(node),
			failOn:  acc1,
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ledger := &recordingLedger{
				balances: map[string]int64{node.String(): 1000},
			}
			if tc.failOn != nil {
				ledger.failOn = tc.failOn.String()
			}
			var continued int
			d := Dispersal{
				Node:       node,
				Pool:       1000,
				Recipients: tc.recipients,
				Chain:      tc.chain,
				Ledger:     ledger,
				Continue: func(ctx cascade.Context, c cascade.Address, share int64, chain AncestorChain) error {
					continued++
					assert.Equal(t, child, c)
					assert.Equal(t, int64(500), share)
					assert.Equal(t, tc.chain, chain)
					return ledger.Transfer(ctx, nil, 0, c, acc2, 1)
				},
			}
			rec := &Receipt{}
			err := NewEngine(nil).Disperse(context.Background(), store.MemStore(), d, rec)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantTransfers, ledger.transfers)
			assert.Equal(t, tc.wantContinue, continued)
		})
	}
}
