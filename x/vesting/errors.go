package vesting

import (
	"github.com/iov-one/tranche/errors"
)

var (
	// ErrNotPastCliff is returned when withdrawing before the cliff
	// period ended.
	ErrNotPastCliff = errors.Register(120, "cliff not reached")

	// ErrAlreadyEmpty is returned when there is nothing left to pay out.
	ErrAlreadyEmpty = errors.Register(121, "nothing to withdraw")

	// ErrAlreadyRevoked is returned when revoking a grant a second time.
	ErrAlreadyRevoked = errors.Register(122, "already revoked")

	// ErrNotRevocable is returned when revoking a grant that was created
	// without the revocable flag.
	ErrNotRevocable = errors.Register(123, "not revocable")

	// ErrFullyVested is returned when revoking a grant whose schedule
	// already completed. There is nothing left to claw back.
	ErrFullyVested = errors.Register(124, "fully vested")
)
