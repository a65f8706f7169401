package vesting

import (
	"testing"

	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/tranchetest"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func TestCreateMsgValidate(t *testing.T) {
	valid := func() *CreateMsg {
		return &CreateMsg{
			Metadata:    &tranche.Metadata{Schema: 1},
			Source:      tranchetest.NewCondition().Address(),
			Beneficiary: tranchetest.NewCondition().Address(),
			Amount:      coin.NewCoinp(1000, "IOV"),
			StartTime:   1000,
			CliffOffset: 250,
			Duration:    1000,
			Revocable:   true,
		}
	}

	cases := map[string]struct {
		mod     func(*CreateMsg)
		wantErr error
	}{
		"valid message": {
			mod: func(*CreateMsg) {},
		},
		"missing metadata": {
			mod:     func(m *CreateMsg) { m.Metadata = nil },
			wantErr: errors.ErrMetadata,
		},
		"missing source": {
			mod:     func(m *CreateMsg) { m.Source = nil },
			wantErr: errors.ErrInput,
		},
		"missing amount": {
			mod:     func(m *CreateMsg) { m.Amount = nil },
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			mod:     func(m *CreateMsg) { m.Amount = coin.NewCoinp(-5, "IOV") },
			wantErr: errors.ErrAmount,
		},
		"missing start time": {
			mod:     func(m *CreateMsg) { m.StartTime = 0 },
			wantErr: errors.ErrInput,
		},
		"zero duration": {
			mod:     func(m *CreateMsg) { m.Duration = 0 },
			wantErr: errors.ErrInput,
		},
		"cliff longer than the schedule": {
			mod:     func(m *CreateMsg) { m.CliffOffset = 1001 },
			wantErr: errors.ErrInput,
		},
		"cliff equal to the schedule is allowed": {
			mod: func(m *CreateMsg) { m.CliffOffset = 1000 },
		},
		"zero cliff is allowed": {
			mod: func(m *CreateMsg) { m.CliffOffset = 0 },
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := valid()
			tc.mod(msg)
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestWithdrawMsgValidate(t *testing.T) {
	msg := &WithdrawMsg{
		Metadata:  &tranche.Metadata{Schema: 1},
		VestingID: tranchetest.SequenceID(5),
	}
	assert.Nil(t, msg.Validate())

	msg.VestingID = []byte("too-short")
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestRevokeMsgValidate(t *testing.T) {
	msg := &RevokeMsg{
		Metadata:  &tranche.Metadata{Schema: 1},
		VestingID: []byte{},
	}
	assert.IsErr(t, errors.ErrInput, msg.Validate())

	msg.VestingID = tranchetest.SequenceID(5)
	assert.Nil(t, msg.Validate())
}

func TestMsgPaths(t *testing.T) {
	assert.Equal(t, "vesting/create", (&CreateMsg{}).Path())
	assert.Equal(t, "vesting/withdraw", (&WithdrawMsg{}).Path())
	assert.Equal(t, "vesting/revoke", (&RevokeMsg{}).Path())
}
