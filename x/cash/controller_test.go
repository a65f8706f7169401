package cash

import (
	"testing"

	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func TestMoveCoins(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)

	alice := tranchetest.NewCondition().Address()
	bob := tranchetest.NewCondition().Address()

	w, err := WalletWith(alice, coin.NewCoinp(100, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(db, w))

	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(40, "IOV")))

	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), got.Amount("IOV").Amount)

	got, err = ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(40), got.Amount("IOV").Amount)
}

func TestMoveCoinsInsufficientFunds(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)

	alice := tranchetest.NewCondition().Address()
	bob := tranchetest.NewCondition().Address()

	w, err := WalletWith(alice, coin.NewCoinp(100, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(db, w))

	err = ctrl.MoveCoins(db, alice, bob, coin.NewCoin(101, "IOV"))
	assert.IsErr(t, errors.ErrAmount, err)

	// Nothing moved.
	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), got.Amount("IOV").Amount)
}

func TestMoveCoinsFromUnknownWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	alice := tranchetest.NewCondition().Address()
	bob := tranchetest.NewCondition().Address()

	err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(1, "IOV"))
	assert.IsErr(t, errors.ErrEmpty, err)
}

func TestMoveCoinsRejectsNonPositive(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	ctrl := NewController(bucket)

	alice := tranchetest.NewCondition().Address()
	bob := tranchetest.NewCondition().Address()

	w, err := WalletWith(alice, coin.NewCoinp(100, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(db, w))

	assert.IsErr(t, errors.ErrAmount, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(0, "IOV")))
	assert.IsErr(t, errors.ErrAmount, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(-4, "IOV")))
}

func TestBalanceUnknownWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	_, err := ctrl.Balance(db, tranchetest.NewCondition().Address())
	assert.IsErr(t, errors.ErrNotFound, err)
}
