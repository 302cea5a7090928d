package util

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeJSON renders v as indented JSON with a trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(b, '\n'), nil
}

// EncodeJSONLines renders one JSON object per line. An empty slice yields an
// empty document.
func EncodeJSONLines[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return nil, fmt.Errorf("marshal row: %w", err)
		}
	}
	return buf.Bytes(), nil
}
