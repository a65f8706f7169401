package vesting

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/migration"
)

func init() {
	migration.MustRegister(1, &CreateMsg{}, migration.NoModification)
	migration.MustRegister(1, &WithdrawMsg{}, migration.NoModification)
	migration.MustRegister(1, &RevokeMsg{}, migration.NoModification)
}

const (
	pathCreate   = "vesting/create"
	pathWithdraw = "vesting/withdraw"
	pathRevoke   = "vesting/revoke"
)

var _ tranche.Msg = (*CreateMsg)(nil)
var _ tranche.Msg = (*WithdrawMsg)(nil)
var _ tranche.Msg = (*RevokeMsg)(nil)

// Path returns the routing path for this message.
func (CreateMsg) Path() string {
	return pathCreate
}

// Validate makes sure that this is sensible.
func (m *CreateMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrAmount, "no amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if err := m.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if m.StartTime == 0 {
		return errors.Wrap(errors.ErrInput, "start time is required")
	}
	if m.CliffOffset < 0 {
		return errors.Wrap(errors.ErrInput, "cliff offset must not be negative")
	}
	if m.Duration <= 0 {
		return errors.Wrap(errors.ErrInput, "duration must be positive")
	}
	if m.CliffOffset > m.Duration {
		return errors.Wrap(errors.ErrInput, "cliff cannot outlast the schedule")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// Path returns the routing path for this message.
func (WithdrawMsg) Path() string {
	return pathWithdraw
}

// Validate makes sure that this is sensible.
func (m *WithdrawMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateVestingID(m.VestingID)
}

// Path returns the routing path for this message.
func (RevokeMsg) Path() string {
	return pathRevoke
}

// Validate makes sure that this is sensible.
func (m *RevokeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateVestingID(m.VestingID)
}

func validateVestingID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "vesting id must be 8 bytes, got %d", len(id))
	}
	return nil
}
