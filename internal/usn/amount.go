// Package usn implements USN-denominated amounts: a human-readable float
// paired with its fixed-point integer form at a chosen decimal precision.
//
// The fixed-point form (ToFixedPoint) is the canonical value that is
// persisted and transferred; the float is for display and pricing input.
package usn

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

const (
	// DefaultDecimals is the USN token precision.
	DefaultDecimals uint8 = 18

	// MaxDecimals is the largest precision whose scaling factor fits in
	// 128 bits.
	MaxDecimals uint8 = 38
)

// two128 is 2^128 as a float, the first value that no longer fits.
var two128 = math.Ldexp(1, 128)

// Amount is a non-negative USN amount.
//
// Fields are unexported so the scaling factor always equals
// 10^decimals and the value is always finite and non-negative.
// The zero value is 0 at DefaultDecimals.
type Amount struct {
	unscaled      float64
	decimals      uint8
	scalingFactor balance.U128
}

// New returns value at DefaultDecimals precision.
func New(value float64) (Amount, error) {
	return NewWithDecimals(value, DefaultDecimals)
}

// NewWithDecimals returns value at the given precision.
// Fails with NEGATIVE_AMOUNT for value < 0 and OUT_OF_RANGE for
// non-finite values or decimals above MaxDecimals.
func NewWithDecimals(value float64, decimals uint8) (Amount, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Amount{}, fault.New(fault.OutOfRange, "amount %v is not finite", value)
	}
	if value < 0 {
		return Amount{}, fault.New(fault.NegativeAmount, "amount %v is negative", value).
			With("value", strconv.FormatFloat(value, 'f', -1, 64))
	}
	if decimals > MaxDecimals {
		return Amount{}, fault.New(fault.OutOfRange, "decimals %d exceed maximum %d", decimals, MaxDecimals)
	}
	if value == 0 {
		// Collapse -0.0.
		value = 0
	}
	return Amount{
		unscaled:      value,
		decimals:      decimals,
		scalingFactor: balance.Pow10(decimals),
	}, nil
}

// MustNew is like New but panics on error.
// Use only for constants or in tests.
func MustNew(value float64) Amount {
	a, err := New(value)
	if err != nil {
		panic(err)
	}
	return a
}

// Parse reads a decimal string at DefaultDecimals precision.
func Parse(s string) (Amount, error) {
	return ParseWithDecimals(s, DefaultDecimals)
}

// ParseWithDecimals reads a decimal string using standard floating-point
// parsing. Malformed or non-finite input fails with PARSE_ERROR.
func ParseWithDecimals(s string, decimals uint8) (Amount, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}, fault.New(fault.ParseError, "invalid amount %q", s)
	}
	return NewWithDecimals(v, decimals)
}

// FromFixedPoint recovers an amount from its fixed-point form.
// Zero maps to exactly 0.0 without dividing.
func FromFixedPoint(raw balance.U128, decimals uint8) (Amount, error) {
	if decimals > MaxDecimals {
		return Amount{}, fault.New(fault.OutOfRange, "decimals %d exceed maximum %d", decimals, MaxDecimals)
	}
	if raw.IsZero() {
		return NewWithDecimals(0, decimals)
	}
	sf := balance.Pow10(decimals)
	return NewWithDecimals(toFloat(raw)/toFloat(sf), decimals)
}

// ToFixedPoint returns round(unscaled * 10^decimals), rounding half away
// from zero. Products beyond 128 bits saturate.
func (a Amount) ToFixedPoint() balance.U128 {
	product := math.Round(a.unscaled * toFloat(a.ScalingFactor()))
	if product >= two128 {
		return balance.Max
	}
	i, _ := big.NewFloat(product).Int(nil)
	v, err := balance.FromBig(i)
	if err != nil {
		return balance.Max
	}
	return v
}

// Float64 returns the unscaled value.
func (a Amount) Float64() float64 {
	return a.unscaled
}

// Decimals returns the precision.
func (a Amount) Decimals() uint8 {
	if a.scalingFactor.IsZero() {
		return DefaultDecimals
	}
	return a.decimals
}

// ScalingFactor returns 10^decimals.
func (a Amount) ScalingFactor() balance.U128 {
	if a.scalingFactor.IsZero() {
		return balance.Pow10(DefaultDecimals)
	}
	return a.scalingFactor
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.unscaled == 0
}

// Add returns a+o at a's precision.
func (a Amount) Add(o Amount) (Amount, error) {
	if err := a.sameScale(o); err != nil {
		return Amount{}, err
	}
	return NewWithDecimals(a.unscaled+o.unscaled, a.Decimals())
}

// Sub returns a-o at a's precision, failing with NEGATIVE_AMOUNT if o > a.
func (a Amount) Sub(o Amount) (Amount, error) {
	if err := a.sameScale(o); err != nil {
		return Amount{}, err
	}
	return NewWithDecimals(a.unscaled-o.unscaled, a.Decimals())
}

// Div returns a/o at a's precision.
func (a Amount) Div(o Amount) (Amount, error) {
	if err := a.sameScale(o); err != nil {
		return Amount{}, err
	}
	if o.unscaled == 0 {
		return Amount{}, fault.New(fault.OutOfRange, "division of %s by zero", a)
	}
	return NewWithDecimals(a.unscaled/o.unscaled, a.Decimals())
}

// Cmp compares the fixed-point forms of a and o.
func (a Amount) Cmp(o Amount) int {
	return a.ToFixedPoint().Cmp(o.ToFixedPoint().Uint128)
}

func (a Amount) sameScale(o Amount) error {
	if a.Decimals() != o.Decimals() {
		return fault.New(fault.DecimalsMismatch, "cannot combine amounts with %d and %d decimals", a.Decimals(), o.Decimals())
	}
	return nil
}

// String renders "{unscaled}-{fixed point}", e.g. "1.5-1500000000000000000".
func (a Amount) String() string {
	return strconv.FormatFloat(a.unscaled, 'f', -1, 64) + "-" + a.ToFixedPoint().String()
}

func toFloat(v balance.U128) float64 {
	f, _ := new(big.Float).SetInt(v.Big()).Float64()
	return f
}
