package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MessageOnly(t *testing.T) {
	err := New(InsufficientDeposit, "Must attach %d yoctoNEAR more to cover storage and deductions", 500)
	assert.Equal(t, "Must attach 500 yoctoNEAR more to cover storage and deductions", err.Error())
	assert.Equal(t, InsufficientDeposit, err.Code)
}

func TestIs_Wrapped(t *testing.T) {
	base := New(OutOfRange, "value %d out of range", 7)
	wrapped := fmt.Errorf("mint: %w", base)

	assert.True(t, Is(wrapped, OutOfRange))
	assert.False(t, Is(wrapped, ParseError))
	assert.False(t, Is(nil, OutOfRange))
	assert.False(t, Is(errors.New("plain"), OutOfRange))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, NotFound, CodeOf(fmt.Errorf("x: %w", New(NotFound, "missing"))))
}

func TestDetail(t *testing.T) {
	err := fmt.Errorf("deposit: %w", New(InsufficientDeposit, "short").With("shortfall", "500"))

	v, ok := Detail(err, "shortfall")
	require.True(t, ok)
	assert.Equal(t, "500", v)

	_, ok = Detail(err, "missing")
	assert.False(t, ok)

	_, ok = Detail(errors.New("plain"), "shortfall")
	assert.False(t, ok)
}
