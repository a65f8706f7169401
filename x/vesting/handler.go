package vesting

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/migration"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/x"
	"github.com/iov-one/tranche/x/cash"
)

const (
	createCost   int64 = 300
	withdrawCost int64 = 150
	revokeCost   int64 = 150
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tranche.Registry, auth x.Authenticator, control cash.CoinMover) {
	r = migration.SchemaMigratingRegistry(r)
	bucket := NewBucket()
	r.Handle(&CreateMsg{}, CreateHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
		seq:     orm.NewSequence(BucketName, "id"),
	})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
	})
	r.Handle(&RevokeMsg{}, RevokeHandler{
		auth:    auth,
		bucket:  bucket,
		control: control,
	})
}

// RegisterQuery will register this bucket as "/vestings".
func RegisterQuery(qr tranche.QueryRouter) {
	NewBucket().Register("vestings", qr)
}

// CreateHandler creates a vesting account and locks the whole grant
// under the module controlled address.
type CreateHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	control cash.CoinMover
	seq     orm.Sequence
}

var _ tranche.Handler = CreateHandler{}

// Check verifies the message and charges the creation fee.
func (h CreateHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: createCost}, nil
}

// Deliver moves the grant from the source wallet into the module
// account and persists the new vesting account.
func (h CreateHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "id sequence")
	}

	acc := &VestingAccount{
		Metadata:    &tranche.Metadata{Schema: 1},
		Owner:       msg.Source,
		Beneficiary: msg.Beneficiary,
		Ticker:      msg.Amount.Ticker,
		TotalAmount: msg.Amount.Amount,
		StartTime:   msg.StartTime,
		CliffOffset: msg.CliffOffset,
		Duration:    msg.Duration,
		Revocable:   msg.Revocable,
		Address:     Condition(id).Address(),
		Memo:        msg.Memo,
	}

	if err := h.control.MoveCoins(db, msg.Source, acc.Address, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot lock the grant")
	}
	if _, err := h.bucket.Put(db, id, acc); err != nil {
		return nil, errors.Wrap(err, "cannot save vesting account")
	}
	return &tranche.DeliverResult{Data: id}, nil
}

func (h CreateHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "no permission for %s", msg.Source)
	}
	return &msg, nil
}

// WithdrawHandler releases all currently withdrawable tokens to the
// beneficiary.
type WithdrawHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	control cash.CoinMover
}

var _ tranche.Handler = WithdrawHandler{}

// Check verifies the withdrawal is currently possible.
func (h WithdrawHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver pays out the withdrawable amount. The amount is determined by
// the block time, not by the message, so the payout is deterministic
// for all nodes processing the block.
func (h WithdrawHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, acc, amount, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	payout := coin.NewCoin(amount, acc.Ticker)
	if err := h.control.MoveCoins(db, acc.Address, acc.Beneficiary, payout); err != nil {
		return nil, errors.Wrap(err, "cannot pay out")
	}
	tranche.GetLogger(ctx).Info("withdrawing vested tokens",
		"amount", payout.String(), "beneficiary", acc.Beneficiary)

	acc.ReleasedAmount += amount
	if _, err := h.bucket.Put(db, msg.VestingID, acc); err != nil {
		return nil, errors.Wrap(err, "cannot save vesting account")
	}
	return &tranche.DeliverResult{Log: payout.String()}, nil
}

func (h WithdrawHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*WithdrawMsg, *VestingAccount, int64, error) {
	var msg WithdrawMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}

	var acc VestingAccount
	if err := h.bucket.One(db, msg.VestingID, &acc); err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load vesting account")
	}

	if !h.auth.HasAddress(ctx, acc.Beneficiary) {
		return nil, nil, 0, errors.Wrapf(errors.ErrUnauthorized, "no permission for %s", acc.Beneficiary)
	}

	blockNow, err := tranche.BlockTime(ctx)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "block time")
	}
	amount, err := withdrawable(&acc, tranche.AsUnixTime(blockNow))
	if err != nil {
		return nil, nil, 0, err
	}
	return &msg, &acc, amount, nil
}

// RevokeHandler cancels a revocable grant and returns the unvested
// remainder to the owner.
type RevokeHandler struct {
	auth    x.Authenticator
	bucket  orm.ModelBucket
	control cash.CoinMover
}

var _ tranche.Handler = RevokeHandler{}

// Check verifies the revocation is currently possible.
func (h RevokeHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: revokeCost}, nil
}

// Deliver claws back the unvested remainder and marks the account as
// revoked. The vested portion stays claimable by the beneficiary.
func (h RevokeHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, acc, clawback, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	refund := coin.NewCoin(clawback, acc.Ticker)
	if err := h.control.MoveCoins(db, acc.Address, acc.Owner, refund); err != nil {
		return nil, errors.Wrap(err, "cannot claw back")
	}
	tranche.GetLogger(ctx).Info("revoking vesting account",
		"clawback", refund.String(), "owner", acc.Owner)

	acc.Revoked = true
	acc.ReleasedAmount += clawback
	if _, err := h.bucket.Put(db, msg.VestingID, acc); err != nil {
		return nil, errors.Wrap(err, "cannot save vesting account")
	}
	return &tranche.DeliverResult{Log: refund.String()}, nil
}

func (h RevokeHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*RevokeMsg, *VestingAccount, int64, error) {
	var msg RevokeMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}

	var acc VestingAccount
	if err := h.bucket.One(db, msg.VestingID, &acc); err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load vesting account")
	}

	if !h.auth.HasAddress(ctx, acc.Owner) {
		return nil, nil, 0, errors.Wrapf(errors.ErrUnauthorized, "no permission for %s", acc.Owner)
	}

	blockNow, err := tranche.BlockTime(ctx)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "block time")
	}
	clawback, err := revokable(&acc, tranche.AsUnixTime(blockNow))
	if err != nil {
		return nil, nil, 0, err
	}
	return &msg, &acc, clawback, nil
}
