package envsynth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadVariables applies a table of variable specifications in key order.
//
// A list value is joined with the separator; if the variable already holds a
// non-empty value, that value is appended after another separator so that
// repeated loads accumulate. A scalar value replaces the variable after
// self-reference placeholders are expanded. Every separator-delimited
// element has surrounding quotes stripped. Values that used a placeholder
// also drop empty and repeated elements, so applying the same descriptor
// twice leaves the variable unchanged.
func (e *Environment) LoadVariables(vars map[string]any) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := e.render(name, vars[name])
		if err != nil {
			return err
		}

		selfRef := HasSelfReference(name, value)
		if selfRef {
			value = Interpolate(name, value, e.Get(name), e.separator)
		}
		value = e.cleanElements(value, selfRef)

		log.Debug().Str("name", name).Str("value", value).Msg("setting environment variable")
		e.Set(name, value)
	}

	return nil
}

func (e *Environment) render(name string, spec any) (string, error) {
	switch val := spec.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []string:
		return e.appendList(name, val), nil
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				return "", fmt.Errorf("environment variable %s: list items must be scalars", name)
			}
			items = append(items, fmt.Sprint(item))
		}
		return e.appendList(name, items), nil
	case map[string]any:
		return "", fmt.Errorf("environment variable %s: nested tables are not supported", name)
	default:
		return fmt.Sprint(val), nil
	}
}

func (e *Environment) appendList(name string, items []string) string {
	joined := strings.Join(items, e.separator)
	if current := e.Get(name); current != "" {
		joined += e.separator + current
	}
	return joined
}

func (e *Environment) cleanElements(value string, dedupe bool) string {
	parts := strings.Split(value, e.separator)
	kept := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		part = unquote(part)
		if dedupe {
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
		}
		kept = append(kept, part)
	}

	return strings.Join(kept, e.separator)
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
