package usn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

func TestNew_Defaults(t *testing.T) {
	a, err := New(1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, a.Float64())
	assert.Equal(t, DefaultDecimals, a.Decimals())
	assert.Equal(t, "1000000000000000000", a.ScalingFactor().String())
}

func TestNew_Rejects(t *testing.T) {
	_, err := New(-0.01)
	assert.True(t, fault.Is(err, fault.NegativeAmount))

	_, err = New(math.NaN())
	assert.True(t, fault.Is(err, fault.OutOfRange))

	_, err = New(math.Inf(1))
	assert.True(t, fault.Is(err, fault.OutOfRange))

	_, err = NewWithDecimals(1, 39)
	assert.True(t, fault.Is(err, fault.OutOfRange))
}

func TestNew_NegativeZero(t *testing.T) {
	a, err := New(math.Copysign(0, -1))
	require.NoError(t, err)
	assert.False(t, math.Signbit(a.Float64()))
}

func TestToFixedPoint(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals uint8
		want     string
	}{
		{"one and a half", 1.5, 18, "1500000000000000000"},
		{"zero", 0, 18, "0"},
		{"six decimals", 123.456, 6, "123456000"},
		{"half rounds up", 0.5, 0, "1"},
		{"one and a half rounds up", 1.5, 0, "2"},
		{"two and a half rounds away", 2.5, 0, "3"},
		{"below half rounds down", 2.4, 0, "2"},
		{"sub unit", 0.75, 0, "1"},
		{"tenth", 0.1, 18, "100000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewWithDecimals(tt.value, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ToFixedPoint().String())
		})
	}
}

func TestToFixedPoint_Saturates(t *testing.T) {
	a, err := NewWithDecimals(math.MaxFloat64, 38)
	require.NoError(t, err)
	assert.Equal(t, balance.Max, a.ToFixedPoint())
}

func TestFromFixedPoint(t *testing.T) {
	a, err := FromFixedPoint(balance.MustParse("2500000000000000000"), 18)
	require.NoError(t, err)
	assert.Equal(t, 2.5, a.Float64())

	zero, err := FromFixedPoint(balance.Zero, 18)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Float64())
	assert.False(t, math.Signbit(zero.Float64()))

	_, err = FromFixedPoint(balance.From64(1), 39)
	assert.True(t, fault.Is(err, fault.OutOfRange))
}

func TestFixedPointRoundTrip(t *testing.T) {
	values := []float64{0, 1, 1.5, 0.25, 12.5, 42}
	for _, d := range []uint8{0, 6, 18} {
		for _, v := range values {
			a, err := NewWithDecimals(v, d)
			require.NoError(t, err)

			raw := a.ToFixedPoint()
			back, err := FromFixedPoint(raw, d)
			require.NoError(t, err)
			assert.Equal(t, raw, back.ToFixedPoint(), "value %v decimals %d", v, d)
		}
	}
}

func TestParse(t *testing.T) {
	a, err := Parse("12.75")
	require.NoError(t, err)
	assert.Equal(t, 12.75, a.Float64())

	for _, bad := range []string{"", "abc", "1.2.3", "NaN", "inf", "--1"} {
		_, err := Parse(bad)
		assert.True(t, fault.Is(err, fault.ParseError), "input %q", bad)
	}

	_, err = Parse("-3")
	assert.True(t, fault.Is(err, fault.NegativeAmount))
}

func TestArithmetic(t *testing.T) {
	a := MustNew(3)
	b := MustNew(1.5)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 4.5, sum.Float64())
	assert.Equal(t, DefaultDecimals, sum.Decimals())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, 1.5, diff.Float64())

	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, 2.0, q.Float64())

	_, err = b.Sub(a)
	assert.True(t, fault.Is(err, fault.NegativeAmount))

	_, err = a.Div(MustNew(0))
	assert.True(t, fault.Is(err, fault.OutOfRange))
}

func TestArithmetic_DecimalsMismatch(t *testing.T) {
	a := MustNew(1)
	b, err := NewWithDecimals(1, 6)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.True(t, fault.Is(err, fault.DecimalsMismatch))
	_, err = a.Sub(b)
	assert.True(t, fault.Is(err, fault.DecimalsMismatch))
	_, err = a.Div(b)
	assert.True(t, fault.Is(err, fault.DecimalsMismatch))
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.5-1500000000000000000", MustNew(1.5).String())
	assert.Equal(t, "0-0", MustNew(0).String())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, MustNew(1).Cmp(MustNew(2)))
	assert.Equal(t, 0, MustNew(2).Cmp(MustNew(2)))
}

func TestZeroValue(t *testing.T) {
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, DefaultDecimals, a.Decimals())
	assert.Equal(t, "1000000000000000000", a.ScalingFactor().String())

	sum, err := a.Add(MustNew(1))
	require.NoError(t, err)
	assert.Equal(t, MustNew(1), sum)

	zero, err := NewWithDecimals(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), zero.Decimals())
	assert.Equal(t, "1", zero.ScalingFactor().String())
}
