package wire

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// URL is an absolute URL that encodes as a plain JSON string.
type URL struct {
	u *url.URL
}

// ParseURL parses raw and requires a scheme.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return URL{}, fmt.Errorf("invalid url %q: missing scheme", raw)
	}
	return URL{u: u}, nil
}

// MustParseURL is like ParseURL but panics on error.
// Use only for constants or in tests.
func MustParseURL(raw string) URL {
	u, err := ParseURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// IsZero reports whether u is unset.
func (u URL) IsZero() bool {
	return u.u == nil
}

func (u URL) String() string {
	if u.u == nil {
		return ""
	}
	return u.u.String()
}

// MarshalJSON implements json.Marshaler.
func (u URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("url must be a string: %w", err)
	}
	parsed, err := ParseURL(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
