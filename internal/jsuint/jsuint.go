// Package jsuint provides an unsigned integer restricted to the range that
// IEEE-754 doubles represent exactly, so values survive a round trip
// through JavaScript clients.
package jsuint

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// Max is the largest representable value, 2^53 - 1.
const Max uint64 = 1<<53 - 1

// Uint is a non-negative integer no greater than Max.
//
// The zero value is valid (0). The field is unexported so every other
// value must come from New, which makes Get infallible.
type Uint struct {
	v uint64
}

// New returns n as a Uint, or an OUT_OF_RANGE error if n exceeds Max.
func New(n uint64) (Uint, error) {
	if n > Max {
		return Uint{}, fault.New(fault.OutOfRange, "integer %d exceeds maximum %d", n, Max).
			With("value", strconv.FormatUint(n, 10))
	}
	return Uint{v: n}, nil
}

// MustNew is like New but panics on error.
// Use only for constants or in tests.
func MustNew(n uint64) Uint {
	u, err := New(n)
	if err != nil {
		panic(err)
	}
	return u
}

// Get returns the wrapped value.
func (u Uint) Get() uint64 {
	return u.v
}

// Add returns u+n, failing with OUT_OF_RANGE if the sum exceeds Max.
func (u Uint) Add(n uint64) (Uint, error) {
	if n > Max-u.v {
		return Uint{}, fault.New(fault.OutOfRange, "integer %d + %d exceeds maximum %d", u.v, n, Max)
	}
	return Uint{v: u.v + n}, nil
}

// Cmp compares u and o and returns -1, 0, or +1.
func (u Uint) Cmp(o Uint) int {
	switch {
	case u.v < o.v:
		return -1
	case u.v > o.v:
		return 1
	default:
		return 0
	}
}

func (u Uint) String() string {
	return strconv.FormatUint(u.v, 10)
}

// MarshalJSON encodes u as a bare JSON number.
func (u Uint) MarshalJSON() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalJSON decodes a bare JSON number, rejecting negatives,
// fractions and values above Max.
func (u *Uint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		return fault.New(fault.ParseError, "expected integer, got %s", data)
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fault.New(fault.ParseError, "expected integer, got %s", data)
	}

	n, err := strconv.ParseUint(num.String(), 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return fault.New(fault.OutOfRange, "integer %s exceeds maximum %d", num, Max)
		}
		return fault.New(fault.ParseError, "expected non-negative integer, got %s", num)
	}

	parsed, err := New(n)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
