// Package balance holds 128-bit token balances (yoctoNEAR and
// fixed-point USN) and their string encodings.
package balance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"lukechampine.com/uint128"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// NearNominationDigits is the number of fractional digits of one NEAR
// expressed in yoctoNEAR.
const NearNominationDigits = 24

// OneNear is 10^24 yoctoNEAR.
var OneNear = Pow10(NearNominationDigits)

// U128 is an unsigned 128-bit amount. It encodes to JSON as a base-10
// string because JSON numbers cannot carry 128 bits exactly.
type U128 struct {
	uint128.Uint128
}

// Zero is the zero amount.
var Zero = U128{}

// Max is 2^128 - 1.
var Max = U128{uint128.Max}

// From64 wraps a uint64.
func From64(v uint64) U128 {
	return U128{uint128.From64(v)}
}

// Wrap converts a raw uint128 value.
func Wrap(v uint128.Uint128) U128 {
	return U128{v}
}

// FromBig converts b, failing with OUT_OF_RANGE when it is negative or
// wider than 128 bits.
func FromBig(b *big.Int) (U128, error) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return U128{}, fault.New(fault.OutOfRange, "value %s does not fit in 128 bits", b.String())
	}
	return U128{uint128.FromBig(b)}, nil
}

// Parse reads a base-10 unsigned integer.
func Parse(s string) (U128, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "+-") {
		return U128{}, fault.New(fault.ParseError, "invalid amount %q", s)
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return U128{}, fault.New(fault.ParseError, "invalid amount %q", s)
	}
	return FromBig(b)
}

// MustParse is like Parse but panics on error.
// Use only for constants or in tests.
func MustParse(s string) U128 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Pow10 returns 10^n. It panics if n > 38.
func Pow10(n uint8) U128 {
	if n > 38 {
		panic(fmt.Sprintf("balance: 10^%d overflows 128 bits", n))
	}
	v := uint128.From64(1)
	for i := uint8(0); i < n; i++ {
		v = v.Mul64(10)
	}
	return U128{v}
}

// CheckedAdd returns a+b or an OUT_OF_RANGE error on overflow.
func (a U128) CheckedAdd(b U128) (U128, error) {
	sum := a.AddWrap(b.Uint128)
	if sum.Cmp(a.Uint128) < 0 {
		return U128{}, fault.New(fault.OutOfRange, "%s + %s overflows 128 bits", a, b)
	}
	return U128{sum}, nil
}

// CheckedSub returns a-b or an OUT_OF_RANGE error if b > a.
func (a U128) CheckedSub(b U128) (U128, error) {
	if a.Cmp(b.Uint128) < 0 {
		return U128{}, fault.New(fault.OutOfRange, "%s - %s underflows", a, b)
	}
	return U128{a.Sub(b.Uint128)}, nil
}

// CheckedMul returns a*b or an OUT_OF_RANGE error on overflow.
func (a U128) CheckedMul(b U128) (U128, error) {
	p := new(big.Int).Mul(a.Big(), b.Big())
	return FromBig(p)
}

// SaturatingSub returns a-b, or zero if b > a.
func (a U128) SaturatingSub(b U128) U128 {
	if a.Cmp(b.Uint128) <= 0 {
		return Zero
	}
	return U128{a.Sub(b.Uint128)}
}

// Less reports whether a < b.
func (a U128) Less(b U128) bool {
	return a.Cmp(b.Uint128) < 0
}

// MarshalJSON encodes a as a base-10 JSON string.
func (a U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a base-10 JSON string.
func (a *U128) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fault.New(fault.ParseError, "expected amount string, got %s", data)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText implements encoding.TextMarshaler so U128 values can be
// used as YAML scalars and map keys.
func (a U128) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *U128) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// FormatNear renders a yoctoNEAR amount in NEAR with all 24 fractional
// digits, e.g. 1500000000000000000000000 -> "1.500000000000000000000000".
func FormatNear(yocto U128) string {
	q, r := yocto.QuoRem(OneNear.Uint128)
	frac := r.String()
	return q.String() + "." + strings.Repeat("0", NearNominationDigits-len(frac)) + frac
}
