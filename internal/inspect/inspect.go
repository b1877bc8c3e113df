package inspect

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// redactedKeys never appear in rendered inspect output, whatever the panel
// sends back. env content and deployment URLs carry credentials.
var redactedKeys = map[string]bool{
	"token":         true,
	"deploymentUrl": true,
	"env":           true,
}

// Render decodes a raw inspect result, strips secret-bearing fields at any
// depth, and renders the remainder as YAML.
func Render(raw json.RawMessage) (string, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("decode inspect result: %w", err)
	}

	out, err := yaml.Marshal(redact(data))
	if err != nil {
		return "", fmt.Errorf("render inspect result: %w", err)
	}
	return string(out), nil
}

func redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		clean := make(map[string]any, len(val))
		for k, child := range val {
			if redactedKeys[k] {
				continue
			}
			clean[k] = redact(child)
		}
		return clean
	case []any:
		clean := make([]any, len(val))
		for i, child := range val {
			clean[i] = redact(child)
		}
		return clean
	default:
		return v
	}
}
