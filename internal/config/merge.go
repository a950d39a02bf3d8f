package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ConflictError reports two fragments that set the same leaf to different
// values.
type ConflictError struct {
	Path     string
	Existing any
	Incoming any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting values for %s: %s != %s", e.Path, describe(e.Existing), describe(e.Incoming))
}

// describe renders a leaf with its type, since YAML 1 and TOML 1.0 print
// alike.
func describe(v any) string {
	switch v.(type) {
	case map[string]any:
		return "a table"
	case []any:
		return fmt.Sprintf("%v (list)", v)
	default:
		return fmt.Sprintf("%#v (%T)", v, v)
	}
}

// Merge deep-merges src into dest. Tables merge recursively, keys missing
// from dest are copied from src, and identical leaves are accepted. Any other
// collision, including a table meeting a scalar, returns a *ConflictError
// naming the dotted key path. src is never mutated; dest may be partially
// updated when an error is returned.
func Merge(dest, src map[string]any) error {
	return mergeInto(dest, src, nil)
}

func mergeInto(dest, src map[string]any, prefix []string) error {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		incoming := src[key]
		existing, ok := dest[key]
		if !ok {
			dest[key] = deepCopy(incoming)
			continue
		}

		path := append(append([]string(nil), prefix...), key)

		existingMap, existingIsMap := existing.(map[string]any)
		incomingMap, incomingIsMap := incoming.(map[string]any)
		switch {
		case existingIsMap && incomingIsMap:
			if err := mergeInto(existingMap, incomingMap, path); err != nil {
				return err
			}
		case reflect.DeepEqual(existing, incoming):
		default:
			return &ConflictError{
				Path:     strings.Join(path, "."),
				Existing: existing,
				Incoming: incoming,
			}
		}
	}

	return nil
}
