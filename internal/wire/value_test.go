package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`{"s":"x","n":3,"b":false,"z":null,"a":[1,{"k":"v"}]}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, String("x"), obj["s"])
	assert.Equal(t, Int(3), obj["n"])
	assert.Equal(t, Bool(false), obj["b"])
	assert.Equal(t, Null{}, obj["z"])
	assert.Equal(t, Array{Int(1), Object{"k": String("v")}}, obj["a"])
}

func TestDecodeFloats(t *testing.T) {
	v, err := Decode([]byte(`{"rarity_score":1.5,"weight":2e3,"ids":[0.1,7]}`))
	require.NoError(t, err)
	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, Float(1.5), obj["rarity_score"])
	assert.Equal(t, Float(2000), obj["weight"])
	assert.Equal(t, Array{Float(0.1), Int(7)}, obj["ids"])

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"ids":[0.1,7],"rarity_score":1.5,"weight":2000}`, string(data))
}

func TestDecodeRejectsUnrepresentableNumbers(t *testing.T) {
	for _, in := range []string{`99999999999999999999`, `1e400`, `[-1e999]`} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestObjectJSONRoundTrip(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"b":1,"a":"x"}`), &obj))

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1}`, string(data))

	err = json.Unmarshal([]byte(`[1]`), &obj)
	assert.Error(t, err)
}

func TestFromAny_YAMLShapes(t *testing.T) {
	v, err := FromAny(map[string]any{"count": 2, "tags": []any{"a", true}})
	require.NoError(t, err)
	assert.Equal(t, Object{"count": Int(2), "tags": Array{String("a"), Bool(true)}}, v)

	_, err = FromAny(map[string]any{"f": 1.5})
	assert.Error(t, err)

	_, err = FromAny(struct{}{})
	assert.Error(t, err)
}

func TestSortedKeys(t *testing.T) {
	obj := Object{"b": Int(1), "a": Int(2), "aa": Int(3)}
	assert.Equal(t, []string{"a", "aa", "b"}, obj.SortedKeys())
}
