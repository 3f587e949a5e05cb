// ABOUTME: Tool argument parsing and typed decoding utilities
// ABOUTME: Raw payloads become string-keyed maps; empty and null payloads become {}

package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseToolArgs deserialises a raw argument payload into a string-keyed map.
// Returns an empty map (not nil) when raw is empty or null.
func ParseToolArgs(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, fmt.Errorf("parsing tool arguments: %w", err)
	}
	return args, nil
}
