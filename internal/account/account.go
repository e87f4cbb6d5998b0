// Package account validates NEAR account identifiers.
package account

import (
	"encoding/json"
	"regexp"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
)

const (
	MinLength = 2
	MaxLength = 64
)

// Lowercase alphanumeric parts separated by '.', each part possibly split
// by single '-' or '_'. Implicit (64 hex) accounts match as well.
var pattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// ID is a validated account identifier.
type ID string

// Parse validates s as an account identifier.
func Parse(s string) (ID, error) {
	if len(s) < MinLength || len(s) > MaxLength {
		return "", fault.New(fault.InvalidAccountID, "account id %q must be %d to %d characters", s, MinLength, MaxLength)
	}
	if !pattern.MatchString(s) {
		return "", fault.New(fault.InvalidAccountID, "account id %q is malformed", s)
	}
	return ID(s), nil
}

// MustParse is like Parse but panics on error.
// Use only for constants or in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON validates the decoded identifier.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fault.New(fault.InvalidAccountID, "expected account id string, got %s", data)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// UnmarshalText validates the decoded identifier. It also covers JSON
// object keys such as royalty tables.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
