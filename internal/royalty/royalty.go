// Package royalty implements basis-point royalty percentages and the
// payout tables derived from them.
package royalty

import (
	"math/big"
	"strconv"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// Max is 100% in basis points.
const Max Percentage = 10000

// Percentage is a royalty share in basis points (1/100 of a percent).
//
// Construction does not validate; call Check before trusting a value
// read from the outside.
type Percentage uint16

// New wraps bp without validation.
func New(bp uint16) Percentage {
	return Percentage(bp)
}

// Check fails with PERCENTAGE_TOO_HIGH if p exceeds Max.
func (p Percentage) Check() error {
	if p > Max {
		return fault.New(fault.PercentageTooHigh, "percentage %d is too high", uint16(p)).
			With("value", strconv.Itoa(int(p)))
	}
	return nil
}

// Split returns floor(p * amount / 10000), computed exactly over the full
// 128-bit range. For unchecked percentages above Max the result saturates
// at the 128-bit maximum.
func (p Percentage) Split(amount balance.U128) balance.U128 {
	n := new(big.Int).Mul(amount.Big(), big.NewInt(int64(p)))
	n.Quo(n, big.NewInt(int64(Max)))
	v, err := balance.FromBig(n)
	if err != nil {
		return balance.Max
	}
	return v
}

// SplitFloat returns p * amount / 10000 in double precision.
func (p Percentage) SplitFloat(amount float64) float64 {
	return float64(p) * amount / float64(Max)
}

// Add returns p+o with 16-bit wrapping semantics. The result is not checked.
func (p Percentage) Add(o Percentage) Percentage {
	return p + o
}

// Sub returns p-o with 16-bit wrapping semantics. The result is not checked.
func (p Percentage) Sub(o Percentage) Percentage {
	return p - o
}

// Div returns p/o truncated. It panics if o is zero.
func (p Percentage) Div(o Percentage) Percentage {
	return p / o
}

func (p Percentage) String() string {
	return strconv.Itoa(int(p))
}
