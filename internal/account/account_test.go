package account

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

func TestParse_Valid(t *testing.T) {
	for _, s := range []string{
		"ok",
		"alice.near",
		"bob_dev.testnet",
		"a-b-c.near",
		"seatlab.collectibles.near",
		strings.Repeat("f", 64),
	} {
		id, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, id.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"a",
		strings.Repeat("a", 65),
		"Alice.near",
		"alice..near",
		"-alice.near",
		"alice.near.",
		"alice__bob",
		"alice@near",
	} {
		_, err := Parse(s)
		require.Error(t, err, s)
		assert.True(t, fault.Is(err, fault.InvalidAccountID), s)
	}
}

func TestJSON_MapKeys(t *testing.T) {
	var m map[ID]int
	require.NoError(t, json.Unmarshal([]byte(`{"alice.near":1}`), &m))
	assert.Equal(t, 1, m["alice.near"])

	err := json.Unmarshal([]byte(`{"Alice":1}`), &m)
	assert.Error(t, err)
}

func TestJSON_Value(t *testing.T) {
	var v struct {
		Owner ID `json:"owner_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"owner_id":"carol.near"}`), &v))
	assert.Equal(t, ID("carol.near"), v.Owner)

	err := json.Unmarshal([]byte(`{"owner_id":"x"}`), &v)
	assert.True(t, fault.Is(err, fault.InvalidAccountID))
}
