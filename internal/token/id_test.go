package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
)

func TestParse_Classifies(t *testing.T) {
	id, err := Parse("abc_5")
	require.NoError(t, err)
	assert.Equal(t, KindGroupItem, id.Kind)
	assert.Equal(t, GroupItem{Group: "abc", Index: 5}, id.Item)
	assert.Equal(t, ID("abc_5"), id.ID)

	id, err = Parse("abc")
	require.NoError(t, err)
	assert.Equal(t, KindManual, id.Kind)
	assert.Equal(t, Manual("abc"), id.Manual)

	id, err = Parse("_7")
	require.NoError(t, err)
	assert.Equal(t, KindGroupItem, id.Kind)
	assert.Equal(t, GroupName(""), id.Item.Group)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		in   string
		code fault.Code
	}{
		{"a_b_5", fault.InvalidTokenID},
		{"abc_", fault.InvalidTokenID},
		{"abc_x", fault.InvalidTokenID},
		{"abc_-1", fault.InvalidTokenID},
		{"abc_99999999999999999999", fault.OutOfRange},
		{strings.Repeat("x", 257), fault.NameTooLong},
		{strings.Repeat("g", 129) + "_1", fault.NameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.in[:min(len(tt.in), 20)], func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, fault.CodeOf(err))
		})
	}
}

func TestParse_LengthCountsCharacters(t *testing.T) {
	// 256 two-byte characters are within the limit.
	_, err := Parse(strings.Repeat("é", 256))
	assert.NoError(t, err)
}

func TestGroupItem_ID(t *testing.T) {
	item := NewGroupItem("concert-2024", 17)
	assert.Equal(t, ID("concert-2024_17"), item.ID())
	assert.Equal(t, "concert-2024_17", item.String())

	parsed, err := Parse(string(item.ID()))
	require.NoError(t, err)
	assert.Equal(t, item, parsed.Item)
}

func TestParseGroupName(t *testing.T) {
	g, err := ParseGroupName("vip-seats")
	require.NoError(t, err)
	assert.Equal(t, GroupName("vip-seats"), g)

	_, err = ParseGroupName("vip_seats")
	assert.True(t, fault.Is(err, fault.InvalidSeparator))

	_, err = ParseGroupName(strings.Repeat("a", 129))
	assert.True(t, fault.Is(err, fault.NameTooLong))

	_, err = ParseGroupName(strings.Repeat("a", 128))
	assert.NoError(t, err)
}

func TestManual_Check(t *testing.T) {
	assert.NoError(t, Manual("golden-ticket").Check())

	err := Manual("golden_ticket").Check()
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.InvalidSeparator))
	assert.Contains(t, err.Error(), "`_`")
}

func TestManual_CheckWith(t *testing.T) {
	one := jsuint.MustNew(1)
	two := jsuint.MustNew(2)
	price := ExampleExtra()

	tests := []struct {
		name string
		md   *Metadata
		code fault.Code
	}{
		{"no metadata", nil, ""},
		{"copies absent", &Metadata{}, ""},
		{"copies one", &Metadata{Copies: &one}, ""},
		{"copies two", &Metadata{Copies: &two}, fault.InvalidCopies},
		{"extra without price", &Metadata{Extra: &Extra{}}, ""},
		{"extra with price", &Metadata{Extra: &price}, fault.UnexpectedPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Manual("abc").CheckWith(tt.md)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.code, fault.CodeOf(err))
		})
	}

	// The separator check runs first.
	err := Manual("a_b").CheckWith(&Metadata{Copies: &two})
	assert.True(t, fault.Is(err, fault.InvalidSeparator))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "manual", KindManual.String())
	assert.Equal(t, "group_item", KindGroupItem.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
