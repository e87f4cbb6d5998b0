package token

import (
	"encoding/base64"

	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/balance"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/fault"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/jsuint"
	"github.com/Seatlab-dev/Smart-Contracts-Common-Library/internal/wire"
)

// exampleHash is sha256-sized: 00112233445566778899AABBCCDDEEFF0112233445566778899AABBCCDDEEFF0.
const exampleHash = "ABEiM0RVZneImaq7zN3u/wESIzRFVmd4iZqrvM3e7/A="

// ExampleMetadata returns a fully populated metadata record, used in
// documentation output and schema tests.
func ExampleMetadata() Metadata {
	hash, _ := base64.StdEncoding.DecodeString(exampleHash)
	extra := ExampleExtra()
	copies := jsuint.MustNew(1)
	return Metadata{
		Title:         ptr("Arch Nemesis: Mail Carrier"),
		Description:   ptr("My free-form description"),
		Media:         ptr("https://example.com/token/media.xyz"),
		MediaHash:     hash,
		Copies:        &copies,
		IssuedAt:      ptr("1640995200000"),
		ExpiresAt:     ptr("1640995200000"),
		StartsAt:      ptr("1640995200000"),
		UpdatedAt:     ptr("1640995200000"),
		Extra:         &extra,
		Reference:     ptr("https://example.com/token.json"),
		ReferenceHash: hash,
	}
}

// ExampleExtra returns a populated extra record with arbitrary keys.
func ExampleExtra() Extra {
	price := balance.From64(1)
	audio := wire.MustParseURL("https://audio.com/audio.mp3")
	video := wire.MustParseURL("https://video.com/video.mp4")
	return Extra{
		Price:    &price,
		AudioURL: &audio,
		VideoURL: &video,
		Others: wire.Object{
			"key_a": wire.Bool(false),
			"key_b": wire.Array{wire.Int(0), wire.Int(1)},
			"key_c": wire.Object{"inner_a": wire.String("value")},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fault.New(fault.ParseError, "invalid base64 hash %q", s)
	}
	return b, nil
}
