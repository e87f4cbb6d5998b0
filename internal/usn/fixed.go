package usn

import (
	"github.com/shopspring/decimal"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// ParseFixed converts a decimal string such as "12.5" straight to its
// fixed-point form without passing through a float. Digits beyond the
// precision are rounded half away from zero.
func ParseFixed(s string, decimals uint8) (balance.U128, error) {
	if decimals > MaxDecimals {
		return balance.U128{}, fault.New(fault.OutOfRange, "decimals %d exceed maximum %d", decimals, MaxDecimals)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return balance.U128{}, fault.New(fault.ParseError, "invalid amount %q", s)
	}
	if d.IsNegative() {
		return balance.U128{}, fault.New(fault.NegativeAmount, "amount %s is negative", s)
	}
	return balance.FromBig(d.Shift(int32(decimals)).Round(0).BigInt())
}

// FormatFixed renders a fixed-point value as a decimal string with
// trailing zeros trimmed, e.g. (1500000, 6) -> "1.5".
func FormatFixed(raw balance.U128, decimals uint8) string {
	return decimal.NewFromBigInt(raw.Big(), -int32(decimals)).String()
}

// Exact returns the fixed-point form of a decimal string as an Amount,
// the float side being the nearest double.
func Exact(s string, decimals uint8) (Amount, error) {
	raw, err := ParseFixed(s, decimals)
	if err != nil {
		return Amount{}, err
	}
	return FromFixedPoint(raw, decimals)
}
