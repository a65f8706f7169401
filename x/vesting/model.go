package vesting

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/migration"
	"github.com/iov-one/tranche/orm"
)

const (
	// BucketName prefixes all vesting account keys.
	BucketName = "vesting"

	maxMemoSize = 128
)

func init() {
	migration.MustRegister(1, &VestingAccount{}, migration.NoModification)
}

var _ orm.CloneableData = (*VestingAccount)(nil)

// Validate ensures the vesting account is well formed.
func (v *VestingAccount) Validate() error {
	if err := v.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := v.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := v.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if !coin.IsCC(v.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %s", v.Ticker)
	}
	if v.TotalAmount <= 0 {
		return errors.Wrap(errors.ErrAmount, "total amount must be positive")
	}
	if v.ReleasedAmount < 0 {
		return errors.Wrap(errors.ErrAmount, "released amount must not be negative")
	}
	if v.ReleasedAmount > v.TotalAmount {
		return errors.Wrap(errors.ErrAmount, "released amount exceeds the grant")
	}
	if err := v.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if v.StartTime == 0 {
		return errors.Wrap(errors.ErrInput, "start time is required")
	}
	if v.CliffOffset < 0 {
		return errors.Wrap(errors.ErrInput, "cliff offset must not be negative")
	}
	if v.Duration <= 0 {
		return errors.Wrap(errors.ErrInput, "duration must be positive")
	}
	if v.CliffOffset > v.Duration {
		return errors.Wrap(errors.ErrInput, "cliff cannot outlast the schedule")
	}
	if err := v.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if len(v.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// Copy produces a deep copy of the vesting account.
func (v *VestingAccount) Copy() orm.CloneableData {
	return &VestingAccount{
		Metadata:       v.Metadata.Copy(),
		Owner:          v.Owner.Clone(),
		Beneficiary:    v.Beneficiary.Clone(),
		Ticker:         v.Ticker,
		TotalAmount:    v.TotalAmount,
		ReleasedAmount: v.ReleasedAmount,
		StartTime:      v.StartTime,
		CliffOffset:    v.CliffOffset,
		Duration:       v.Duration,
		Revocable:      v.Revocable,
		Revoked:        v.Revoked,
		Address:        v.Address.Clone(),
		Memo:           v.Memo,
	}
}

// Condition returns the condition controlling the tokens locked under
// the vesting account with given ID.
func Condition(id []byte) tranche.Condition {
	return tranche.NewCondition("vesting", "seq", id)
}

// NewBucket initializes a bucket to access vesting accounts, with
// secondary indexes on the beneficiary and the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &VestingAccount{},
		orm.WithIndex("beneficiary", idxBeneficiary, false),
		orm.WithIndex("owner", idxOwner, false),
	)
}

func toAccount(obj orm.Object) (*VestingAccount, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acc, ok := obj.Value().(*VestingAccount)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of vesting accounts")
	}
	return acc, nil
}

func idxBeneficiary(obj orm.Object) ([]byte, error) {
	acc, err := toAccount(obj)
	if err != nil {
		return nil, err
	}
	return acc.Beneficiary, nil
}

func idxOwner(obj orm.Object) ([]byte, error) {
	acc, err := toAccount(obj)
	if err != nil {
		return nil, err
	}
	return acc.Owner, nil
}
