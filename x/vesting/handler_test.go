package vesting

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/app"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
	"github.com/iov-one/tranche/x/cash"
)

type fixture struct {
	t       *testing.T
	db      tranche.KVStore
	rt      *app.Router
	auth    *tranchetest.CtxAuth
	owner   tranche.Condition
	benef   tranche.Condition
	wallets cash.Bucket
}

func newFixture(t *testing.T) *fixture {
	db := store.MemStore()
	auth := &tranchetest.CtxAuth{Key: "auth"}
	rt := app.NewRouter()
	RegisterRoutes(rt, auth, cash.NewController(cash.NewBucket()))

	owner := tranchetest.NewCondition()
	benef := tranchetest.NewCondition()

	wallets := cash.NewBucket()
	w, err := cash.WalletWith(owner.Address(), coin.NewCoinp(10000, "IOV"))
	assert.Nil(t, err)
	assert.Nil(t, wallets.Save(db, w))

	return &fixture{
		t:       t,
		db:      db,
		rt:      rt,
		auth:    auth,
		owner:   owner,
		benef:   benef,
		wallets: wallets,
	}
}

func (f *fixture) ctx(now int64, signers ...tranche.Condition) tranche.Context {
	ctx := tranche.WithHeight(context.Background(), 100)
	ctx = tranche.WithBlockTime(ctx, time.Unix(now, 0))
	return f.auth.SetConditions(ctx, signers...)
}

// create delivers a CreateMsg with default schedule values and returns
// the ID of the new vesting account. The grant is 1000 IOV, starting at
// 1000 with a 250 seconds cliff and a 1000 seconds duration.
func (f *fixture) create(revocable bool) []byte {
	f.t.Helper()
	msg := &CreateMsg{
		Metadata:    &tranche.Metadata{Schema: 1},
		Source:      f.owner.Address(),
		Beneficiary: f.benef.Address(),
		Amount:      coin.NewCoinp(1000, "IOV"),
		StartTime:   1000,
		CliffOffset: 250,
		Duration:    1000,
		Revocable:   revocable,
	}
	res, err := f.rt.Deliver(f.ctx(900, f.owner), f.db, &tranchetest.Tx{Msg: msg})
	assert.Nil(f.t, err)
	return res.Data
}

func (f *fixture) withdraw(now int64, id []byte, signer tranche.Condition) error {
	f.t.Helper()
	msg := &WithdrawMsg{Metadata: &tranche.Metadata{Schema: 1}, VestingID: id}
	_, err := f.rt.Deliver(f.ctx(now, signer), f.db, &tranchetest.Tx{Msg: msg})
	return err
}

func (f *fixture) revoke(now int64, id []byte, signer tranche.Condition) error {
	f.t.Helper()
	msg := &RevokeMsg{Metadata: &tranche.Metadata{Schema: 1}, VestingID: id}
	_, err := f.rt.Deliver(f.ctx(now, signer), f.db, &tranchetest.Tx{Msg: msg})
	return err
}

func (f *fixture) balance(addr tranche.Address) int64 {
	f.t.Helper()
	obj, err := f.wallets.Get(f.db, addr)
	assert.Nil(f.t, err)
	if obj == nil {
		return 0
	}
	return cash.AsCoins(obj).Amount("IOV").Amount
}

func (f *fixture) account(id []byte) *VestingAccount {
	f.t.Helper()
	var acc VestingAccount
	assert.Nil(f.t, NewBucket().One(f.db, id, &acc))
	return &acc
}

func TestCreateVestingAccount(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	acc := f.account(id)
	assert.Equal(t, int64(1000), acc.TotalAmount)
	assert.Equal(t, int64(0), acc.ReleasedAmount)
	assert.Equal(t, Condition(id).Address(), acc.Address)

	// The grant left the owner wallet and is locked under the module
	// account.
	assert.Equal(t, int64(9000), f.balance(f.owner.Address()))
	assert.Equal(t, int64(1000), f.balance(acc.Address))
}

func TestCreateRequiresSourceSignature(t *testing.T) {
	f := newFixture(t)
	msg := &CreateMsg{
		Metadata:    &tranche.Metadata{Schema: 1},
		Source:      f.owner.Address(),
		Beneficiary: f.benef.Address(),
		Amount:      coin.NewCoinp(1000, "IOV"),
		StartTime:   1000,
		CliffOffset: 250,
		Duration:    1000,
	}
	_, err := f.rt.Deliver(f.ctx(900, f.benef), f.db, &tranchetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestCreateWithInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	msg := &CreateMsg{
		Metadata:    &tranche.Metadata{Schema: 1},
		Source:      f.owner.Address(),
		Beneficiary: f.benef.Address(),
		Amount:      coin.NewCoinp(999999, "IOV"),
		StartTime:   1000,
		CliffOffset: 250,
		Duration:    1000,
	}
	_, err := f.rt.Deliver(f.ctx(900, f.owner), f.db, &tranchetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestWithdrawBeforeCliff(t *testing.T) {
	f := newFixture(t)
	id := f.create(false)

	// Tokens accrue from the start but the cliff gates withdrawals
	// until 1250.
	assert.IsErr(t, ErrNotPastCliff, f.withdraw(1100, id, f.benef))
	assert.Equal(t, int64(0), f.balance(f.benef.Address()))
}

func TestWithdrawOverSchedule(t *testing.T) {
	f := newFixture(t)
	id := f.create(false)

	// At the cliff everything accrued since the start pays out at once.
	assert.Nil(t, f.withdraw(1250, id, f.benef))
	assert.Equal(t, int64(250), f.balance(f.benef.Address()))

	// Nothing new accrued, the second call fails and moves nothing.
	assert.IsErr(t, ErrAlreadyEmpty, f.withdraw(1250, id, f.benef))
	assert.Equal(t, int64(250), f.balance(f.benef.Address()))

	// Mid schedule only the newly accrued part is paid.
	assert.Nil(t, f.withdraw(1600, id, f.benef))
	assert.Equal(t, int64(600), f.balance(f.benef.Address()))

	// Past the end of the schedule the remainder drains.
	assert.Nil(t, f.withdraw(2100, id, f.benef))
	assert.Equal(t, int64(1000), f.balance(f.benef.Address()))
	assert.Equal(t, int64(0), f.balance(f.account(id).Address))

	// The drained account stays drained.
	assert.IsErr(t, ErrAlreadyEmpty, f.withdraw(2200, id, f.benef))
	assert.Equal(t, int64(1000), f.account(id).ReleasedAmount)
}

func TestWithdrawRequiresBeneficiarySignature(t *testing.T) {
	f := newFixture(t)
	id := f.create(false)

	assert.IsErr(t, errors.ErrUnauthorized, f.withdraw(1600, id, f.owner))
}

func TestWithdrawUnknownAccount(t *testing.T) {
	f := newFixture(t)
	f.create(false)

	err := f.withdraw(1600, tranchetest.SequenceID(12345), f.benef)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRevokeMidSchedule(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	// At 1600 the grant is 60% vested. The owner takes back the
	// unvested 400.
	assert.Nil(t, f.revoke(1600, id, f.owner))
	assert.Equal(t, int64(9400), f.balance(f.owner.Address()))

	acc := f.account(id)
	assert.Equal(t, true, acc.Revoked)
	assert.Equal(t, int64(400), acc.ReleasedAmount)

	// The vested part stays claimable, even before the cliff would
	// normally allow and long after the revocation.
	assert.Nil(t, f.withdraw(5000, id, f.benef))
	assert.Equal(t, int64(600), f.balance(f.benef.Address()))
	assert.IsErr(t, ErrAlreadyEmpty, f.withdraw(5000, id, f.benef))
}

func TestRevokeAfterPartialWithdraw(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	assert.Nil(t, f.withdraw(1250, id, f.benef))
	assert.Equal(t, int64(250), f.balance(f.benef.Address()))

	assert.Nil(t, f.revoke(1600, id, f.owner))
	assert.Equal(t, int64(9400), f.balance(f.owner.Address()))

	// 600 vested, 250 already paid out, 350 remain claimable.
	assert.Nil(t, f.withdraw(1700, id, f.benef))
	assert.Equal(t, int64(600), f.balance(f.benef.Address()))

	// Everything is accounted for, the module account is empty.
	assert.Equal(t, int64(0), f.balance(f.account(id).Address))
}

func TestRevokeTwice(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	assert.Nil(t, f.revoke(1600, id, f.owner))
	assert.IsErr(t, ErrAlreadyRevoked, f.revoke(1700, id, f.owner))
	// The second attempt must not move any funds.
	assert.Equal(t, int64(9400), f.balance(f.owner.Address()))
}

func TestRevokeNotRevocable(t *testing.T) {
	f := newFixture(t)
	id := f.create(false)

	assert.IsErr(t, ErrNotRevocable, f.revoke(1600, id, f.owner))
	assert.Equal(t, int64(9000), f.balance(f.owner.Address()))
}

func TestRevokeFullyVested(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	assert.IsErr(t, ErrFullyVested, f.revoke(2000, id, f.owner))

	// The beneficiary can still drain the whole grant.
	assert.Nil(t, f.withdraw(2000, id, f.benef))
	assert.Equal(t, int64(1000), f.balance(f.benef.Address()))
}

func TestRevokeRequiresOwnerSignature(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	assert.IsErr(t, errors.ErrUnauthorized, f.revoke(1600, id, f.benef))
}

func TestDeliverLogsTokenMovements(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	var logs bytes.Buffer
	logger := log.NewTMLogger(&logs)

	msg := &WithdrawMsg{Metadata: &tranche.Metadata{Schema: 1}, VestingID: id}
	ctx := tranche.WithLogger(f.ctx(1250, f.benef), logger)
	_, err := f.rt.Deliver(ctx, f.db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	if !strings.Contains(logs.String(), "250 IOV") {
		t.Fatalf("payout not logged: %q", logs.String())
	}

	logs.Reset()
	rmsg := &RevokeMsg{Metadata: &tranche.Metadata{Schema: 1}, VestingID: id}
	ctx = tranche.WithLogger(f.ctx(1600, f.owner), logger)
	_, err = f.rt.Deliver(ctx, f.db, &tranchetest.Tx{Msg: rmsg})
	assert.Nil(t, err)
	if !strings.Contains(logs.String(), "400 IOV") {
		t.Fatalf("clawback not logged: %q", logs.String())
	}
}

func TestCheckAllocatesGas(t *testing.T) {
	f := newFixture(t)
	id := f.create(true)

	msg := &WithdrawMsg{Metadata: &tranche.Metadata{Schema: 1}, VestingID: id}
	res, err := f.rt.Check(f.ctx(1600, f.benef), f.db, &tranchetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, withdrawCost, res.GasAllocated)

	// Check must not mutate the account.
	assert.Equal(t, int64(0), f.account(id).ReleasedAmount)
}
