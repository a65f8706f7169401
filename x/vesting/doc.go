/*
Package vesting implements a linear token vesting escrow.

An owner locks a grant of one currency for a beneficiary. The tokens
are held by a module controlled account and vest linearly between the
start of the schedule and its end. A cliff period can additionally gate
withdrawals without delaying the accrual, so the first withdrawal after
the cliff pays out everything vested since the start.

The beneficiary withdraws as often as they like; every withdrawal pays
out exactly the vested amount that was not paid before. If a grant is
revocable, the owner can cancel it mid-schedule: the unvested remainder
returns to the owner while the vested portion stays claimable by the
beneficiary forever.

All amounts are computed with exact integer arithmetic, rounding down,
so the sum of all payouts never exceeds the grant and always reaches it
once the schedule completes.
*/
package vesting
