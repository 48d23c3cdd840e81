package normalizer

import (
	"encoding/json"
	"fmt"
	"math"

	xapiskema "github.com/reoring/xapiskema"
	"github.com/reoring/xapiskema/model"
)

// asRecord asserts that raw is a structured record.
func asRecord(raw any) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, xapiskema.IssueAt(xapiskema.Root(), xapiskema.CodeInvalidType, fmt.Sprintf("expected object, got %s", describe(raw)), "expected", "object")
	}
	return m, nil
}

// isset reports a key that is present with a non-null value.
func isset(data map[string]any, key string) (any, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// isEmpty follows the loose notion of emptiness used for mandatory fields:
// null, false, "", "0", zero numbers and empty collections are all empty.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == "" || t == "0"
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

// optionalString returns the string stored under key, "" when unset.
func optionalString(data map[string]any, key string) (string, error) {
	v, ok := isset(data, key)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", xapiskema.InvalidType(key, "string")
	}
	return s, nil
}

// requiredString returns the non-empty string stored under key.
func requiredString(data map[string]any, key string) (string, error) {
	if isEmpty(data[key]) {
		return "", xapiskema.Required(key)
	}
	return optionalString(data, key)
}

// languageMap converts an optional language map stored under key.
func languageMap(data map[string]any, key string) (model.LanguageMap, error) {
	v, ok := isset(data, key)
	if !ok {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, xapiskema.InvalidType(key, "object")
	}
	out := make(model.LanguageMap, len(m))
	for lang, text := range m {
		s, ok := text.(string)
		if !ok {
			return nil, xapiskema.IssueAt(xapiskema.Root().Field(key).Field(lang), xapiskema.CodeInvalidType, "language map values must be strings", "field", key, "expected", "string")
		}
		out[lang] = s
	}
	return out, nil
}

func normalizeLanguageMap(m model.LanguageMap) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// number converts the numeric representations a document may carry. NaN and
// infinities are rejected: they have no JSON spelling.
func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if _, ok := number(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func rebase(field string, err error) error {
	return xapiskema.Rebase(xapiskema.Root().Field(field).Pointer(), err)
}

func rebaseIndex(field string, i int, err error) error {
	return xapiskema.Rebase(xapiskema.Root().Field(field).Index(i).Pointer(), err)
}
