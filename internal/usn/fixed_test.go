package usn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

func TestParseFixed(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
	}{
		{"12.5", 6, "12500000"},
		{"0.1", 18, "100000000000000000"},
		{"100000000", 18, "100000000000000000000000000"},
		{"1.0000005", 6, "1000001"},
		{"1.0000004", 6, "1000000"},
		{"7", 0, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFixed(tt.in, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseFixed_Rejects(t *testing.T) {
	_, err := ParseFixed("abc", 6)
	assert.True(t, fault.Is(err, fault.ParseError))

	_, err = ParseFixed("-1", 6)
	assert.True(t, fault.Is(err, fault.NegativeAmount))

	_, err = ParseFixed("1", 39)
	assert.True(t, fault.Is(err, fault.OutOfRange))

	_, err = ParseFixed("1000", 38)
	assert.True(t, fault.Is(err, fault.OutOfRange))
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "1.5", FormatFixed(balance.From64(1500000), 6))
	assert.Equal(t, "0", FormatFixed(balance.Zero, 18))
	assert.Equal(t, "42", FormatFixed(balance.From64(42), 0))
	assert.Equal(t, "0.000001", FormatFixed(balance.From64(1), 6))
}

func TestExact(t *testing.T) {
	a, err := Exact("0.1", 18)
	require.NoError(t, err)
	assert.Equal(t, 0.1, a.Float64())
	assert.Equal(t, "100000000000000000", a.ToFixedPoint().String())
}
