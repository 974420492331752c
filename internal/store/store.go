// Package store persists the four entity collections (items, categories,
// date overrides, forgotten records) plus settings. It is the system of
// record; every in-memory view is recomputed from it.
package store

import (
	"encoding/json"
	"fmt"
)

// encodeJSON marshals a value for storage in a JSON text column.
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

// decodeJSON unmarshals a JSON text column. An empty column decodes to the
// target's zero value.
func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decoding column: %w", err)
	}
	return nil
}
