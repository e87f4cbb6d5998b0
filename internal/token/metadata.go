package token

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/wire"
)

// Metadata is the NEP-177 token metadata record.
//
// Timestamps are unix epoch milliseconds encoded as strings. Hashes are
// base64-encoded sha256 digests.
type Metadata struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Media         *string      `json:"media"`
	MediaHash     []byte       `json:"media_hash"`
	Copies        *jsuint.Uint `json:"copies"`
	IssuedAt      *string      `json:"issued_at"`
	ExpiresAt     *string      `json:"expires_at"`
	StartsAt      *string      `json:"starts_at"`
	UpdatedAt     *string      `json:"updated_at"`
	Extra         *Extra       `json:"extra"`
	Reference     *string      `json:"reference"`
	ReferenceHash []byte       `json:"reference_hash"`
}

// UnmarshalJSON rejects unknown fields.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	type plain Metadata
	var p plain
	if err := decodeStrict(data, &p); err != nil {
		return fmt.Errorf("token metadata: %w", err)
	}
	*m = Metadata(p)
	return nil
}

// Extra is the typed part of metadata.extra. Keys other than price,
// audio_url and video_url are kept verbatim in Others and written back at
// the top level.
type Extra struct {
	// Price in USN, fixed point.
	Price    *balance.U128
	AudioURL *wire.URL
	VideoURL *wire.URL
	Others   wire.Object
}

var extraKnownKeys = []string{"price", "audio_url", "video_url"}

// MarshalJSON flattens Others next to the typed fields.
func (e Extra) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Others)+3)
	for k, v := range e.Others {
		raw, err := wire.MarshalCanonical(v)
		if err != nil {
			return nil, fmt.Errorf("extra %q: %w", k, err)
		}
		out[k] = raw
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("extra %q: %w", key, err)
		}
		out[key] = raw
		return nil
	}
	if err := set("price", e.Price); err != nil {
		return nil, err
	}
	if err := set("audio_url", e.AudioURL); err != nil {
		return nil, err
	}
	if err := set("video_url", e.VideoURL); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits the typed keys from the rest.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("token extra: %w", err)
	}

	var out Extra
	if v, ok := raw["price"]; ok && !isNull(v) {
		var p balance.U128
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("token extra price: %w", err)
		}
		out.Price = &p
	}
	if v, ok := raw["audio_url"]; ok && !isNull(v) {
		var u wire.URL
		if err := json.Unmarshal(v, &u); err != nil {
			return fmt.Errorf("token extra audio_url: %w", err)
		}
		out.AudioURL = &u
	}
	if v, ok := raw["video_url"]; ok && !isNull(v) {
		var u wire.URL
		if err := json.Unmarshal(v, &u); err != nil {
			return fmt.Errorf("token extra video_url: %w", err)
		}
		out.VideoURL = &u
	}

	for _, k := range extraKnownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		out.Others = make(wire.Object, len(raw))
		for k, v := range raw {
			val, err := wire.Decode(v)
			if err != nil {
				return fmt.Errorf("token extra %q: %w", k, err)
			}
			out.Others[k] = val
		}
	}

	*e = out
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
