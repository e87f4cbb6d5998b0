package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// encodeJSON converts a record to JSON TEXT for storage.
// HTML escaping is disabled so stored bytes match what callers sent.
// Go's encoder sorts map keys, so output is deterministic.
func encodeJSON(what string, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal %s: %w", what, err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// decodeJSON parses stored JSON TEXT into v.
func decodeJSON(what, data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", what, err)
	}
	return nil
}
