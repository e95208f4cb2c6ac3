package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// decodeObject parses model text into a single JSON object. Code fences and
// prose around the object are tolerated; a top-level array or trailing
// values after the object are not.
func decodeObject(text string) (map[string]any, error) {
	if strings.HasPrefix(stripCodeFence(text), "[") {
		return nil, fmt.Errorf("%w: response is a JSON array, not an object", ErrMalformedResponse)
	}

	raw := extractJSONObject(text)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: response is not a JSON object", ErrMalformedResponse)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedResponse)
	}
	return obj, nil
}

// stripCodeFence trims s and removes a surrounding ``` fence, if any.
func stripCodeFence(s string) string {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if nl := strings.Index(raw, "\n"); nl >= 0 {
		raw = raw[nl+1:]
	} else {
		raw = strings.TrimPrefix(raw, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "```"))
}

// extractJSONObject returns the outermost {...} span of s, or "" if none.
func extractJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// stringify renders a decoded JSON value as trimmed text: strings as-is,
// numbers in their literal form, null as "", nested values as compact JSON.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return strings.TrimSpace(fmt.Sprint(val))
		}
		return strings.TrimSpace(buf.String())
	}
}

// stringList coerces an array value into trimmed, non-empty strings, keeping
// at most limit entries. The result is never nil so it encodes as [].
func stringList(v any, limit int) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}

	for _, item := range items {
		s := stringify(item)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

// entries returns v as an array, or nil when it is absent or not an array.
func entries(v any) []any {
	items, _ := v.([]any)
	return items
}
