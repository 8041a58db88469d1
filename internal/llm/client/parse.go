package llmclient

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseFields decodes a JSON object into field values. Non-string values are
// coerced to their text form rather than rejected, so a partially sloppy
// response still yields usable content. Returns ErrInvalidJSON when the body
// is not a JSON object at all.
func ParseFields(raw []byte) (map[string]string, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = coerceString(v)
	}
	return out, nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// StripFence removes a surrounding markdown code fence, which chat models
// sometimes add around JSON despite instructions.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
