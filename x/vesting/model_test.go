package vesting

import (
	"testing"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func validAccount() *VestingAccount {
	return &VestingAccount{
		Metadata:    &tranche.Metadata{Schema: 1},
		Owner:       tranchetest.NewCondition().Address(),
		Beneficiary: tranchetest.NewCondition().Address(),
		Ticker:      "IOV",
		TotalAmount: 1000,
		StartTime:   1000,
		CliffOffset: 250,
		Duration:    1000,
		Revocable:   true,
		Address:     Condition(tranchetest.SequenceID(1)).Address(),
	}
}

func TestVestingAccountValidate(t *testing.T) {
	cases := map[string]struct {
		mod     func(*VestingAccount)
		wantErr error
	}{
		"valid account": {
			mod: func(*VestingAccount) {},
		},
		"missing metadata": {
			mod:     func(a *VestingAccount) { a.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
		"bad ticker": {
			mod:     func(a *VestingAccount) { a.Ticker = "vest" },
			wantErr: errors.ErrCurrency,
		},
		"zero grant": {
			mod:     func(a *VestingAccount) { a.TotalAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"released exceeds the grant": {
			mod:     func(a *VestingAccount) { a.ReleasedAmount = 1001 },
			wantErr: errors.ErrAmount,
		},
		"missing start time": {
			mod:     func(a *VestingAccount) { a.StartTime = 0 },
			wantErr: errors.ErrInput,
		},
		"zero duration": {
			mod:     func(a *VestingAccount) { a.Duration = 0 },
			wantErr: errors.ErrInput,
		},
		"cliff longer than the schedule": {
			mod:     func(a *VestingAccount) { a.CliffOffset = 1001 },
			wantErr: errors.ErrInput,
		},
		"missing owner": {
			mod:     func(a *VestingAccount) { a.Owner = nil },
			wantErr: errors.ErrInput,
		},
		"missing module address": {
			mod:     func(a *VestingAccount) { a.Address = nil },
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			acc := validAccount()
			tc.mod(acc)
			err := acc.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestVestingAccountIndexes(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()

	acc := validAccount()
	id, err := b.Put(db, nil, acc)
	assert.Nil(t, err)

	var byBeneficiary []VestingAccount
	keys, err := b.ByIndex(db, "beneficiary", acc.Beneficiary, &byBeneficiary)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(byBeneficiary))
	assert.Equal(t, id, keys[0])

	var byOwner []VestingAccount
	_, err = b.ByIndex(db, "owner", acc.Owner, &byOwner)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(byOwner))
	assert.Equal(t, acc.TotalAmount, byOwner[0].TotalAmount)
}

func TestVestingAccountCopy(t *testing.T) {
	acc := validAccount()
	cpy := acc.Copy().(*VestingAccount)
	cpy.ReleasedAmount = 500
	cpy.Beneficiary[0] ^= 0xff

	assert.Equal(t, int64(0), acc.ReleasedAmount)
	if acc.Beneficiary.Equals(cpy.Beneficiary) {
		t.Fatal("copy shares the beneficiary address")
	}
}
