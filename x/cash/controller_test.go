package cash

import (
	"context"
	"math"
	"testing"

	"github.com/cascadefund/cascade"
	"github.com/cascadefund/cascade/cascadetest"
	"github.com/cascadefund/cascade/errors"
	"github.com/cascadefund/cascade/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Test controller works as intended", t, func() {
		issuer := cascadetest.NewCondition()
		alice := cascadetest.NewCondition()
		bob := cascadetest.NewCondition()

		db := store.MemStore()
		ctx := context.Background()
		auth := &cascadetest.Auth{}
		ctrl := NewController(auth)

		So(ctrl.CreateToken(db, "IOV", issuer.Address()), ShouldBeNil)

		Convey("Token cannot be declared twice", func() {
			err := ctrl.CreateToken(db, "IOV", alice.Address())
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
		})

		Convey("Unknown accounts have no funds", func() {
			b, err := ctrl.BalanceOf(db, "IOV", alice.Address())
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 0)
		})

		Convey("Only the issuer can mint", func() {
			auth.Signer = alice
			err := ctrl.Mint(ctx, db, "IOV", alice.Address(), 10)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			auth.Signer = issuer
			So(ctrl.Mint(ctx, db, "IOV", alice.Address(), 10), ShouldBeNil)
			b, err := ctrl.BalanceOf(db, "IOV", alice.Address())
			So(err, ShouldBeNil)
			So(b, ShouldEqual, 10)
		})

		Convey("Unknown token cannot be used", func() {
			auth.Signer = issuer
			err := ctrl.Mint(ctx, db, "BTC", alice.Address(), 10)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)

			_, err = ctrl.Ledger(db, "BTC")
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Minting cannot overflow a balance", func() {
			auth.Signer = issuer
			So(ctrl.Mint(ctx, db, "IOV", alice.Address(), math.MaxInt64), ShouldBeNil)
			err := ctrl.Mint(ctx, db, "IOV", alice.Address(), 1)
			So(errors.ErrOverflow.Is(err), ShouldBeTrue)
		})

		Convey("When alice has funds", func() {
			auth.Signer = issuer
			So(ctrl.Mint(ctx, db, "IOV", alice.Address(), 100), ShouldBeNil)
			auth.Signer = alice

			Convey("Transfer moves funds and increments the nonce", func() {
				So(ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), bob.Address(), 40), ShouldBeNil)
				assertBalance(ctrl, db, alice.Address(), 60)
				assertBalance(ctrl, db, bob.Address(), 40)

				n, err := ctrl.Nonce(db, "IOV", alice.Address())
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})

			Convey("Zero transfer is accepted", func() {
				So(ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), bob.Address(), 0), ShouldBeNil)
				assertBalance(ctrl, db, alice.Address(), 100)
				assertBalance(ctrl, db, bob.Address(), 0)
			})

			Convey("Transfer to self keeps the balance", func() {
				So(ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), alice.Address(), 30), ShouldBeNil)
				assertBalance(ctrl, db, alice.Address(), 100)
			})

			Convey("Negative transfer is rejected", func() {
				err := ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), bob.Address(), -1)
				So(errors.ErrAmount.Is(err), ShouldBeTrue)
			})

			Convey("Invalid nonce is rejected", func() {
				err := ctrl.Transfer(ctx, db, "IOV", 1, alice.Address(), bob.Address(), 1)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
				assertBalance(ctrl, db, alice.Address(), 100)
			})

			Convey("Transfer requires the source signature", func() {
				auth.Signer = bob
				err := ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), bob.Address(), 1)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})

			Convey("Transfer cannot exceed the balance", func() {
				err := ctrl.Transfer(ctx, db, "IOV", 0, alice.Address(), bob.Address(), 101)
				So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			})

			Convey("Spender can use an approved allowance", func() {
				So(ctrl.Approve(ctx, db, "IOV", 0, alice.Address(), bob.Address(), 50), ShouldBeNil)
				a, err := ctrl.Allowance(db, "IOV", alice.Address(), bob.Address())
				So(err, ShouldBeNil)
				So(a, ShouldEqual, 50)

				auth.Signer = bob
				So(ctrl.TransferFrom(ctx, db, "IOV", 0, bob.Address(), alice.Address(), bob.Address(), 20), ShouldBeNil)
				assertBalance(ctrl, db, alice.Address(), 80)
				assertBalance(ctrl, db, bob.Address(), 20)

				a, err = ctrl.Allowance(db, "IOV", alice.Address(), bob.Address())
				So(err, ShouldBeNil)
				So(a, ShouldEqual, 30)

				err = ctrl.TransferFrom(ctx, db, "IOV", 1, bob.Address(), alice.Address(), bob.Address(), 31)
				So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			})

			Convey("Spender without allowance cannot move funds", func() {
				auth.Signer = bob
				err := ctrl.TransferFrom(ctx, db, "IOV", 0, bob.Address(), alice.Address(), bob.Address(), 1)
				So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
			})
		})
	})
}

func assertBalance(ctrl Controller, db cascade.ReadOnlyKVStore, owner cascade.Address, want int64) {
	got, err := ctrl.BalanceOf(db, "IOV", owner)
	So(err, ShouldBeNil)
	So(got, ShouldEqual, want)
}

func TestTokenLedger(t *testing.T) {
	issuer := cascadetest.NewCondition()
	alice := cascadetest.NewCondition()
	bob := cascadetest.NewCondition()

	db := store.MemStore()
	auth := &cascadetest.Auth{Signer: issuer}
	ctx := context.Background()
	ctrl := NewController(auth)
	if err := ctrl.CreateToken(db, "IOV", issuer.Address()); err != nil {
		t.Fatalf("cannot create token: %s", err)
	}
	if err := ctrl.Mint(ctx, db, "IOV", alice.Address(), 7); err != nil {
		t.Fatalf("cannot mint: %s", err)
	}

	ledger, err := ctrl.Ledger(db, "IOV")
	if err != nil {
		t.Fatalf("cannot get ledger: %s", err)
	}
	if ledger.Ticker() != "IOV" {
		t.Fatalf("unexpected ticker: %q", ledger.Ticker())
	}

	auth.Signer = alice
	if err := ledger.Transfer(ctx, db, 0, alice.Address(), bob.Address(), 7); err != nil {
		t.Fatalf("cannot transfer: %s", err)
	}
	if b, err := ledger.BalanceOf(db, bob.Address()); err != nil || b != 7 {
		t.Fatalf("want 7, got %d (%v)", b, err)
	}
	if n, err := ledger.Nonce(db, alice.Address()); err != nil || n != 1 {
		t.Fatalf("want nonce 1, got %d (%v)", n, err)
	}
}
