package vesting

import (
	"math/bits"

	"github.com/iov-one/tranche"
)

// vestedAmount returns how many tokens of the total grant vested by the
// given moment. Vesting accrues linearly from the start of the schedule,
// the cliff only gates withdrawals and does not delay accrual.
//
// The product total*elapsed can exceed 64 bits so the division is done
// on a 128 bit intermediate. Exact integer arithmetic, rounding down.
func vestedAmount(total int64, start tranche.UnixTime, duration tranche.UnixDuration, now tranche.UnixTime) int64 {
	if now <= start {
		return 0
	}
	elapsed := uint64(now - start)
	if elapsed >= uint64(duration) {
		return total
	}
	// elapsed < duration guarantees hi < duration, so the division
	// cannot panic and the quotient fits in an int64.
	hi, lo := bits.Mul64(uint64(total), elapsed)
	q, _ := bits.Div64(hi, lo, uint64(duration))
	return int64(q)
}

// cliffEnd returns the first moment withdrawals are allowed.
func cliffEnd(acc *VestingAccount) tranche.UnixTime {
	return acc.StartTime + tranche.UnixTime(acc.CliffOffset)
}

// scheduleEnd returns the moment the whole grant is vested.
func scheduleEnd(acc *VestingAccount) tranche.UnixTime {
	return acc.StartTime + tranche.UnixTime(acc.Duration)
}

// withdrawable returns the amount the beneficiary can claim at the
// given moment.
//
// A revoked account ignores the cliff and the schedule. Whatever was
// vested before the revocation and not yet paid out remains claimable.
func withdrawable(acc *VestingAccount, now tranche.UnixTime) (int64, error) {
	if acc.Revoked {
		remainder := acc.TotalAmount - acc.ReleasedAmount
		if remainder <= 0 {
			return 0, ErrAlreadyEmpty
		}
		return remainder, nil
	}

	if now < cliffEnd(acc) {
		return 0, ErrNotPastCliff
	}

	if now >= scheduleEnd(acc) {
		remainder := acc.TotalAmount - acc.ReleasedAmount
		if remainder <= 0 {
			return 0, ErrAlreadyEmpty
		}
		return remainder, nil
	}

	delta := vestedAmount(acc.TotalAmount, acc.StartTime, acc.Duration, now) - acc.ReleasedAmount
	if delta <= 0 {
		return 0, ErrAlreadyEmpty
	}
	return delta, nil
}

// revokable returns the amount the owner can claw back at the given
// moment. Preconditions are checked in order so the caller gets the
// most specific failure.
func revokable(acc *VestingAccount, now tranche.UnixTime) (int64, error) {
	if !acc.Revocable {
		return 0, ErrNotRevocable
	}
	if acc.Revoked {
		return 0, ErrAlreadyRevoked
	}
	if now >= scheduleEnd(acc) {
		return 0, ErrFullyVested
	}
	clawback := acc.TotalAmount - vestedAmount(acc.TotalAmount, acc.StartTime, acc.Duration, now)
	if clawback <= 0 {
		return 0, ErrAlreadyEmpty
	}
	return clawback, nil
}
