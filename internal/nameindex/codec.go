package nameindex

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode renders idx as an indented JSON object. encoding/json sorts map
// keys, so equal indexes always encode to identical bytes.
func Encode(idx Index) ([]byte, error) {
	if idx == nil {
		idx = Index{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]string(idx)); err != nil {
		return nil, fmt.Errorf("cannot encode name index: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON object of string to string.
func Decode(data []byte) (Index, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty name index")
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid name index JSON: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("name index is not an object")
	}
	return Index(m), nil
}
