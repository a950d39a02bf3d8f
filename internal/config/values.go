package config

import (
	"fmt"
	"strconv"

	"mvdan.cc/sh/v3/shell"
)

// Lookup resolves variable references while splitting string-valued options.
type Lookup func(name string) string

// String returns the scalar at path rendered as a string, or fallback when
// the path is unset or holds a table or list.
func (t *Tree) String(path, fallback string) string {
	v, ok := t.Get(path)
	if !ok {
		return fallback
	}
	if s, ok := AsString(v); ok {
		return s
	}
	return fallback
}

// Strings returns the list at path. A string value is split into words with
// shell quoting rules, resolving $VAR references through lookup.
func (t *Tree) Strings(path string, lookup Lookup) ([]string, error) {
	v, ok := t.Get(path)
	if !ok {
		return nil, nil
	}
	list, err := AsStrings(v, lookup)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return list, nil
}

// Int returns the integer at path. Strings holding a decimal integer are
// accepted.
func (t *Tree) Int(path string) (int, bool) {
	v, ok := t.Get(path)
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// Bool returns the boolean at path, false when unset.
func (t *Tree) Bool(path string) bool {
	v, ok := t.Get(path)
	if !ok {
		return false
	}
	return AsBool(v)
}

// Table returns the table at path, nil when unset or not a table.
func (t *Tree) Table(path string) map[string]any {
	v, ok := t.Get(path)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// AsString renders a scalar config value as a string.
func AsString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case nil, map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// AsStrings converts a list value, or a shell-quoted string, into words.
func AsStrings(v any, lookup Lookup) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if lookup == nil {
			lookup = func(string) string { return "" }
		}
		words, err := shell.Fields(val, lookup)
		if err != nil {
			return nil, fmt.Errorf("splitting %q: %w", val, err)
		}
		return words, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := AsString(item)
			if !ok {
				return nil, fmt.Errorf("list item %v is not a scalar", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, ok := AsString(val)
		if !ok {
			return nil, fmt.Errorf("value %v is not a list", val)
		}
		return []string{s}, nil
	}
}

// AsInt converts a numeric config value.
func AsInt(v any) (int, bool) {
	switch val := v.(type) {
	case int64:
		return int(val), true
	case int:
		return val, true
	case float64:
		if val != float64(int(val)) {
			return 0, false
		}
		return int(val), true
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsBool converts a boolean config value. Strings are parsed with
// strconv.ParseBool.
func AsBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	default:
		return false
	}
}
