package config

import (
	"fmt"
)

// normalize converts decoder output into the canonical shapes used by Tree:
// tables are map[string]any, sequences are []any, integers are int64 and
// floats are float64. YAML and TOML disagree on these, and merge equality
// must not depend on which format a fragment came from.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[fmt.Sprint(k)] = normalize(x)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = normalize(x)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = x
		}
		return out
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = deepCopy(x)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = deepCopy(x)
		}
		return out
	default:
		return v
	}
}
