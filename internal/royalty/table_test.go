package royalty

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/account"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

func TestValidate(t *testing.T) {
	ok := Table{"alice.near": 2500, "bob.near": 7500}
	assert.NoError(t, ok.Validate(10))

	tooHigh := Table{"alice.near": 10001}
	assert.True(t, fault.Is(tooHigh.Validate(10), fault.PercentageTooHigh))

	overTotal := Table{"alice.near": 6000, "bob.near": 6000}
	err := overTotal.Validate(10)
	assert.True(t, fault.Is(err, fault.PercentageTooHigh))
	assert.Contains(t, err.Error(), "12000")

	many := Table{}
	for i := 0; i < 11; i++ {
		many[account.ID(fmt.Sprintf("b%d.near", i))] = 10
	}
	assert.True(t, fault.Is(many.Validate(10), fault.TooManyBeneficiaries))
}

func TestValidate_NoWrapAround(t *testing.T) {
	// 10000 * 7 wraps a 16-bit sum to 4464; the wide total must still fail.
	tbl := Table{}
	for i := 0; i < 7; i++ {
		tbl[account.ID(fmt.Sprintf("w%d.near", i))] = 10000
	}
	assert.True(t, fault.Is(tbl.Validate(10), fault.PercentageTooHigh))
}

func TestPayout_SumsToAmount(t *testing.T) {
	tbl := Table{"alice.near": 3333, "bob.near": 1000}
	amount := balance.From64(1001)

	p := tbl.Payout(amount, "owner.near")
	require.Len(t, p.Payout, 3)
	assert.Equal(t, "333", p.Payout["alice.near"].String())
	assert.Equal(t, "100", p.Payout["bob.near"].String())
	assert.Equal(t, "568", p.Payout["owner.near"].String())

	total := balance.Zero
	for _, v := range p.Payout {
		var err error
		total, err = total.CheckedAdd(v)
		require.NoError(t, err)
	}
	assert.Equal(t, amount, total)
}

func TestPayout_OwnerIsBeneficiary(t *testing.T) {
	tbl := Table{"owner.near": 1000}
	p := tbl.Payout(balance.From64(100), "owner.near")
	require.Len(t, p.Payout, 1)
	assert.Equal(t, "100", p.Payout["owner.near"].String())
}

func TestPayoutLimited(t *testing.T) {
	beneficiaries := func(n int) Table {
		tbl := Table{}
		for i := 0; i < n; i++ {
			tbl[account.ID(fmt.Sprintf("b%d.near", i))] = 100
		}
		return tbl
	}
	amount := balance.From64(10000)

	t.Run("owner entry counts against the limit", func(t *testing.T) {
		tbl := beneficiaries(10)
		require.NoError(t, tbl.Validate(10))

		_, err := tbl.PayoutLimited(amount, "owner.near", 10)
		assert.True(t, fault.Is(err, fault.TooManyBeneficiaries))
		assert.Contains(t, err.Error(), "11 entries")
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		p, err := beneficiaries(9).PayoutLimited(amount, "owner.near", 10)
		require.NoError(t, err)
		assert.Len(t, p.Payout, 10)
		assert.Equal(t, "9100", p.Payout["owner.near"].String())
	})

	t.Run("owner already a beneficiary", func(t *testing.T) {
		tbl := beneficiaries(9)
		tbl["owner.near"] = 100
		assert.Equal(t, 10, tbl.PayoutEntries("owner.near"))

		p, err := tbl.PayoutLimited(amount, "owner.near", 10)
		require.NoError(t, err)
		assert.Len(t, p.Payout, 10)
	})

	t.Run("invalid table", func(t *testing.T) {
		_, err := Table{"alice.near": 10001}.PayoutLimited(amount, "owner.near", 10)
		assert.True(t, fault.Is(err, fault.PercentageTooHigh))
	})
}

func TestPayout_JSON(t *testing.T) {
	tbl := Table{"alice.near": 5000}
	data, err := json.Marshal(tbl.Payout(balance.From64(10), "owner.near"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"payout":{"alice.near":"5","owner.near":"5"}}`, string(data))
}

func TestTable_JSONRoundTrip(t *testing.T) {
	var tbl Table
	require.NoError(t, json.Unmarshal([]byte(`{"alice.near":250}`), &tbl))
	assert.Equal(t, Percentage(250), tbl["alice.near"])
}
