package artifact

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one decoded row of an artifact table before typing. Values are
// strings, numbers, bools or []any lists depending on the column schema.
type Record map[string]any

// String returns the first non-empty string value among the given keys.
// Multiple keys cover schema renames between GraphRAG releases.
func (r Record) String(keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s, true
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64), true
		case int64:
			return strconv.FormatInt(s, 10), true
		case bool:
			return strconv.FormatBool(s), true
		}
	}
	return "", false
}

// Float returns the first numeric value among the given keys.
func (r Record) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// StringList returns the first list value among the given keys, flattened to
// strings. A scalar string counts as a one-element list; CSV exports encode
// lists as JSON arrays inside a string cell, which is handled here too.
func (r Record) StringList(keys ...string) []string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch list := v.(type) {
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			if len(list) > 0 {
				return list
			}
		case string:
			if parsed := parseListCell(list); len(parsed) > 0 {
				return parsed
			}
		}
	}
	return nil
}

func parseListCell(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if strings.HasPrefix(cell, "[") {
		var items []string
		if json.Unmarshal([]byte(cell), &items) == nil {
			return items
		}
		var anyItems []any
		if json.Unmarshal([]byte(cell), &anyItems) == nil {
			out := make([]string, 0, len(anyItems))
			for _, item := range anyItems {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
		return nil
	}
	return []string{cell}
}
