package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/royalty"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/token"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/usn"
)

func TestDefinitions(t *testing.T) {
	defs, err := Definitions()
	require.NoError(t, err)
	for _, want := range []string{
		"JsUint", "RoyaltyPercentage", "UsnAmount", "TokenId", "TokenIdManual",
		"TokenIdGroupItem", "TokenIdGroupName", "TokenMetadata", "TokenOffer",
	} {
		assert.Contains(t, defs, want)
	}
	assert.IsIncreasing(t, defs)
}

func TestValidate_Scalars(t *testing.T) {
	tests := []struct {
		def   string
		doc   string
		valid bool
	}{
		{"JsUint", `0`, true},
		{"JsUint", `9007199254740991`, true},
		{"JsUint", `9007199254740992`, false},
		{"JsUint", `-1`, false},
		{"JsUint", `1.5`, false},
		{"RoyaltyPercentage", `10000`, true},
		{"RoyaltyPercentage", `10001`, false},
		{"#TokenId", `"abc"`, true},
		{"TokenId", `"abc_5"`, true},
		{"TokenId", `"a_b_5"`, false},
		{"TokenId", `"abc_"`, false},
		{"TokenIdManual", `"abc_5"`, false},
		{"TokenIdGroupItem", `"abc_5"`, true},
		{"TokenIdGroupItem", `"abc"`, false},
		{"TokenIdGroupName", `"abc"`, true},
		{"TokenIdGroupName", `"a_b"`, false},
		{"AccountId", `"alice.near"`, true},
		{"AccountId", `"Alice"`, false},
		{"U128", `"340282366920938463463374607431768211455"`, true},
		{"U128", `"01"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.def+" "+tt.doc, func(t *testing.T) {
			errs, err := Validate(tt.def, []byte(tt.doc))
			require.NoError(t, err)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestValidate_UsnAmount(t *testing.T) {
	data, err := json.Marshal(usn.MustNew(1.5))
	require.NoError(t, err)
	errs, err := Validate("UsnAmount", data)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = Validate("UsnAmount", []byte(`{"unscaled_value": 1, "scaling_factor": 1000000000000000000}`))
	require.NoError(t, err)
	assert.Empty(t, errs, "decimals default to 18")

	errs, err = Validate("UsnAmount", []byte(`{"unscaled_value": -1, "decimals": 18, "scaling_factor": 1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, errs)

	errs, err = Validate("UsnAmount", []byte(`{"unscaled_value": 1, "decimals": 18, "scaling_factor": 1, "extra": 1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
}

func TestValidate_Metadata(t *testing.T) {
	data, err := json.Marshal(token.ExampleMetadata())
	require.NoError(t, err)
	errs, err := Validate("TokenMetadata", data)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = Validate("TokenMetadata", []byte(`{"title": "x", "colour": "red"}`))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Path, "colour")
}

func TestValidate_Offer(t *testing.T) {
	offer, err := token.NewOffer("concert", token.ExampleMetadata(), royalty.Table{"artist.near": 1000}, 10)
	require.NoError(t, err)
	data, err := json.Marshal(offer)
	require.NoError(t, err)

	errs, err := Validate("TokenOffer", data)
	require.NoError(t, err)
	assert.Empty(t, errs)

	bad := []byte(`{"token_group_id": "con_cert", "metadata": {}, "royalty": {"artist.near": 20000}, "units_created": 0}`)
	errs, err = Validate("TokenOffer", bad)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(errs), 1)
}

func TestValidate_Errors(t *testing.T) {
	_, err := Validate("Nope", []byte(`1`))
	assert.ErrorContains(t, err, "unknown definition")

	_, err = Validate("JsUint", []byte(`{`))
	assert.Error(t, err)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "a.b: bad", ValidationError{Path: "a.b", Message: "bad"}.Error())
	assert.Equal(t, "bad", ValidationError{Message: "bad"}.Error())
}

func TestSource(t *testing.T) {
	assert.Contains(t, Source(), "#TokenOffer:")
}
