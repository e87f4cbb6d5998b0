// Package token implements collectible token identity and the records
// attached to tokens: metadata, group offers, and view shapes.
//
// A token id is either a manual id (any name without the separator) or a
// group item "{group}_{index}". The two grammars never overlap, so every
// id classifies unambiguously.
package token

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

const (
	// Separator joins a group name and an item index.
	Separator = "_"

	// MaxIDLength is the longest token id, in characters.
	MaxIDLength = 256

	// MaxGroupNameLength is the longest group name, in characters.
	MaxGroupNameLength = 128
)

var groupItemPattern = regexp.MustCompile(`^([^_]*)_([0-9]+)$`)

// ID is a token identifier as it appears on the wire.
type ID string

func (id ID) String() string {
	return string(id)
}

// Manual is a token id chosen by hand. It never contains Separator.
type Manual string

// GroupName names a batch of tokens sharing metadata and royalties.
type GroupName string

// GroupItem is the index-th unit of a group. Indexes start at 1.
type GroupItem struct {
	Group GroupName
	Index uint64
}

// Kind classifies a parsed id.
type Kind int

const (
	KindManual Kind = iota + 1
	KindGroupItem
)

func (k Kind) String() string {
	switch k {
	case KindManual:
		return "manual"
	case KindGroupItem:
		return "group_item"
	default:
		return "unknown"
	}
}

// Identity is a classified token id.
type Identity struct {
	ID     ID
	Kind   Kind
	Manual Manual    // set when Kind == KindManual
	Item   GroupItem // set when Kind == KindGroupItem
}

// Parse classifies s as a manual id or a group item. Ids are NFC
// normalized first. Anything matching neither grammar, such as "a_b_5",
// fails with INVALID_TOKEN_ID.
func Parse(s string) (Identity, error) {
	s = norm.NFC.String(s)
	if n := utf8.RuneCountInString(s); n > MaxIDLength {
		return Identity{}, fault.New(fault.NameTooLong, "token id has %d characters, limit is %d", n, MaxIDLength)
	}

	if !strings.Contains(s, Separator) {
		return Identity{ID: ID(s), Kind: KindManual, Manual: Manual(s)}, nil
	}

	m := groupItemPattern.FindStringSubmatch(s)
	if m == nil {
		return Identity{}, fault.New(fault.InvalidTokenID, "token id %q is neither a manual id nor a group item", s)
	}
	group, err := ParseGroupName(m[1])
	if err != nil {
		return Identity{}, err
	}
	index, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Identity{}, fault.New(fault.OutOfRange, "group item index %s is out of range", m[2])
	}
	return Identity{
		ID:   ID(s),
		Kind: KindGroupItem,
		Item: GroupItem{Group: group, Index: index},
	}, nil
}

// ParseGroupName validates s as a group name.
func ParseGroupName(s string) (GroupName, error) {
	s = norm.NFC.String(s)
	if strings.Contains(s, Separator) {
		return "", fault.New(fault.InvalidSeparator, "group name %q must not contain the separator `%s`", s, Separator)
	}
	if n := utf8.RuneCountInString(s); n > MaxGroupNameLength {
		return "", fault.New(fault.NameTooLong, "group name has %d characters, limit is %d", n, MaxGroupNameLength)
	}
	return GroupName(s), nil
}

// NewGroupItem formats the id of the index-th unit of group.
func NewGroupItem(group GroupName, index uint64) GroupItem {
	return GroupItem{Group: group, Index: index}
}

// ID returns "{group}_{index}".
func (g GroupItem) ID() ID {
	return ID(string(g.Group) + Separator + strconv.FormatUint(g.Index, 10))
}

func (g GroupItem) String() string {
	return string(g.ID())
}

// Check fails with INVALID_SEPARATOR if the name contains Separator.
func (m Manual) Check() error {
	if strings.Contains(string(m), Separator) {
		return fault.New(fault.InvalidSeparator,
			"Manually created tokens must not use the separator `%s` in their token id", Separator)
	}
	if n := utf8.RuneCountInString(string(m)); n > MaxIDLength {
		return fault.New(fault.NameTooLong, "token id has %d characters, limit is %d", n, MaxIDLength)
	}
	return nil
}

// CheckWith runs Check and validates the metadata a manual token is
// created with: copies must be absent or 1, and extra.price must be unset.
func (m Manual) CheckWith(md *Metadata) error {
	if err := m.Check(); err != nil {
		return err
	}
	if md == nil {
		return nil
	}
	if md.Copies != nil && md.Copies.Get() != 1 {
		return fault.New(fault.InvalidCopies,
			"Manually created tokens must have a `metadata.copies` set to either `null` or `1`").
			With("copies", md.Copies.String())
	}
	if md.Extra != nil && md.Extra.Price != nil {
		return fault.New(fault.UnexpectedPrice,
			"Manually created tokens must not have a `metadata.extra.price` value")
	}
	return nil
}

// ID returns the manual name as a token id.
func (m Manual) ID() ID {
	return ID(m)
}
