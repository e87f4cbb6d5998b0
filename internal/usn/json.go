package usn

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

// wireAmount is the JSON shape. All three fields are written even though
// the scaling factor is derivable; readers verify it.
type wireAmount struct {
	UnscaledValue json.Number  `json:"unscaled_value"`
	Decimals      *uint8       `json:"decimals,omitempty"`
	ScalingFactor *json.Number `json:"scaling_factor,omitempty"`
}

// MarshalJSON encodes the amount as
// {"unscaled_value": 1.5, "decimals": 18, "scaling_factor": 1000000000000000000}.
func (a Amount) MarshalJSON() ([]byte, error) {
	d := a.Decimals()
	sf := json.Number(a.ScalingFactor().String())
	return json.Marshal(wireAmount{
		UnscaledValue: json.Number(strconv.FormatFloat(a.unscaled, 'g', -1, 64)),
		Decimals:      &d,
		ScalingFactor: &sf,
	})
}

// UnmarshalJSON decodes and re-validates an amount. A missing decimals
// field means DefaultDecimals; a present scaling_factor must equal
// 10^decimals.
func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var w wireAmount
	if err := dec.Decode(&w); err != nil {
		return fault.New(fault.ParseError, "invalid amount: %v", err)
	}
	if w.UnscaledValue == "" {
		return fault.New(fault.ParseError, "amount is missing unscaled_value")
	}

	v, err := strconv.ParseFloat(w.UnscaledValue.String(), 64)
	if err != nil || math.IsInf(v, 0) {
		return fault.New(fault.ParseError, "invalid unscaled_value %s", w.UnscaledValue)
	}

	decimals := DefaultDecimals
	if w.Decimals != nil {
		decimals = *w.Decimals
	}

	parsed, err := NewWithDecimals(v, decimals)
	if err != nil {
		return err
	}

	if w.ScalingFactor != nil {
		sf, err := balance.Parse(w.ScalingFactor.String())
		if err != nil || sf != parsed.ScalingFactor() {
			return fault.New(fault.OutOfRange, "scaling_factor %s does not match %d decimals", *w.ScalingFactor, decimals)
		}
	}

	*a = parsed
	return nil
}
