package royalty

import (
	"slices"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// Table maps beneficiaries to their royalty share.
type Table map[account.ID]Percentage

// Payout is the per-account distribution of a sale amount, encoded as
// {"payout": {"<account>": "<amount>"}}.
type Payout struct {
	Payout map[account.ID]balance.U128 `json:"payout"`
}

// Total returns the sum of every share in the table.
// Accumulates in 32 bits so 16-bit wrapping cannot hide an excess.
func (t Table) Total() uint32 {
	var sum uint32
	for _, p := range t {
		sum += uint32(p)
	}
	return sum
}

// Validate checks each share, the beneficiary count, and that the
// aggregate does not exceed 100%.
func (t Table) Validate(maxBeneficiaries int) error {
	if len(t) > maxBeneficiaries {
		return fault.New(fault.TooManyBeneficiaries, "royalty has %d beneficiaries, limit is %d", len(t), maxBeneficiaries)
	}
	for _, acct := range t.Accounts() {
		if err := t[acct].Check(); err != nil {
			return err
		}
	}
	if total := t.Total(); total > uint32(Max) {
		return fault.New(fault.PercentageTooHigh, "royalty total %d is too high", total)
	}
	return nil
}

// PayoutEntries returns the number of entries Payout produces for owner:
// one per beneficiary, plus one unless owner is already a beneficiary.
func (t Table) PayoutEntries(owner account.ID) int {
	if _, ok := t[owner]; ok {
		return len(t)
	}
	return len(t) + 1
}

// PayoutLimited validates the table and distributes amount, failing with
// TOO_MANY_BENEFICIARIES when the payout, owner entry included, would
// exceed maxEntries.
func (t Table) PayoutLimited(amount balance.U128, owner account.ID, maxEntries int) (Payout, error) {
	if err := t.Validate(maxEntries); err != nil {
		return Payout{}, err
	}
	if n := t.PayoutEntries(owner); n > maxEntries {
		return Payout{}, fault.New(fault.TooManyBeneficiaries, "payout has %d entries, limit is %d", n, maxEntries)
	}
	return t.Payout(amount, owner), nil
}

// Accounts returns the beneficiaries in sorted order.
func (t Table) Accounts() []account.ID {
	accts := make([]account.ID, 0, len(t))
	for a := range t {
		accts = append(accts, a)
	}
	slices.Sort(accts)
	return accts
}

// Payout distributes amount: every beneficiary receives its floored share
// and owner receives the remainder, so the entries always sum to amount.
// The table must have passed Validate.
func (t Table) Payout(amount balance.U128, owner account.ID) Payout {
	out := make(map[account.ID]balance.U128, len(t)+1)
	rest := amount
	for _, acct := range t.Accounts() {
		share := t[acct].Split(amount)
		out[acct] = share
		rest = rest.SaturatingSub(share)
	}
	if prev, ok := out[owner]; ok {
		// Validated tables never sum above amount, so this cannot overflow.
		sum, _ := prev.CheckedAdd(rest)
		out[owner] = sum
	} else {
		out[owner] = rest
	}
	return Payout{Payout: out}
}
