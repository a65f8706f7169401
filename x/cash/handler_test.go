package cash

import (
	"context"
	"testing"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := tranchetest.NewCondition()
	bob := tranchetest.NewCondition()

	db := store.MemStore()
	bucket := NewBucket()
	w, err := WalletWith(alice.Address(), coin.NewCoinp(100, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(db, w))

	h := NewSendHandler(&tranchetest.Auth{Signer: alice}, NewController(bucket))

	msg := &SendMsg{
		Metadata:    &tranche.Metadata{Schema: 1},
		Source:      alice.Address(),
		Destination: bob.Address(),
		Amount:      coin.NewCoinp(25, "IOV"),
		Memo:        "rent",
	}
	tx := &tranchetest.Tx{Msg: msg}
	ctx := context.Background()

	res, err := h.Check(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, sendTxCost, res.GasAllocated)

	_, err = h.Deliver(ctx, db, tx)
	assert.Nil(t, err)

	obj, err := bucket.Get(db, bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(25), AsCoins(obj).Amount("IOV").Amount)
}

func TestSendHandlerRequiresSourceSignature(t *testing.T) {
	alice := tranchetest.NewCondition()
	bob := tranchetest.NewCondition()

	db := store.MemStore()
	bucket := NewBucket()
	w, err := WalletWith(alice.Address(), coin.NewCoinp(100, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(db, w))

	// Bob signs, but the wallet belongs to alice.
	h := NewSendHandler(&tranchetest.Auth{Signer: bob}, NewController(bucket))

	msg := &SendMsg{
		Metadata:    &tranche.Metadata{Schema: 1},
		Source:      alice.Address(),
		Destination: bob.Address(),
		Amount:      coin.NewCoinp(25, "IOV"),
	}
	_, err = h.Deliver(context.Background(), db, &tranchetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestSendMsgValidate(t *testing.T) {
	alice := tranchetest.NewCondition().Address()
	bob := tranchetest.NewCondition().Address()

	cases := map[string]struct {
		msg     *SendMsg
		wantErr error
	}{
		"valid": {
			msg: &SendMsg{
				Metadata:    &tranche.Metadata{Schema: 1},
				Source:      alice,
				Destination: bob,
				Amount:      coin.NewCoinp(10, "IOV"),
			},
		},
		"no amount": {
			msg: &SendMsg{
				Metadata:    &tranche.Metadata{Schema: 1},
				Source:      alice,
				Destination: bob,
			},
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			msg: &SendMsg{
				Metadata:    &tranche.Metadata{Schema: 1},
				Source:      alice,
				Destination: bob,
				Amount:      coin.NewCoinp(-10, "IOV"),
			},
			wantErr: errors.ErrAmount,
		},
		"missing destination": {
			msg: &SendMsg{
				Metadata: &tranche.Metadata{Schema: 1},
				Source:   alice,
				Amount:   coin.NewCoinp(10, "IOV"),
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}
