package config

import (
	"fmt"
	"sort"
)

var listPaths = []string{
	PathEnvironmentFiles,
	PathExtraConfigure,
	PathExtraConan,
	PathExtraBuild,
	PathTestPatterns,
	PathTestPassArgs,
	PathRemotes,
	PathSourcePatterns,
	PathSourceIgnore,
	PathSourceInclude,
}

// Validate checks that the recognized paths of a merged tree hold values of
// the expected shape. Unknown paths are left alone.
func Validate(t *Tree) error {
	if err := validateEnvironment(t); err != nil {
		return fmt.Errorf("environment config: %w", err)
	}

	if err := validateTools(t); err != nil {
		return fmt.Errorf("tools config: %w", err)
	}

	for _, path := range listPaths {
		if _, err := t.Strings(path, nil); err != nil {
			return err
		}
	}

	if v, ok := t.Get(PathJobs); ok {
		if _, ok := AsInt(v); !ok {
			return fmt.Errorf("config %s: %v is not an integer", PathJobs, v)
		}
	}

	return nil
}

func validateEnvironment(t *Tree) error {
	v, ok := t.Get(PathEnvironment)
	if !ok {
		return nil
	}

	vars, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%s must be a table of variables", PathEnvironment)
	}

	for _, name := range sortedKeys(vars) {
		if _, nested := vars[name].(map[string]any); nested {
			return fmt.Errorf("variable %s: nested tables are not supported", name)
		}
	}

	return nil
}

func validateTools(t *Tree) error {
	v, ok := t.Get(PathTools)
	if !ok {
		return nil
	}

	tools, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%s must be a table of tool paths", PathTools)
	}

	for _, name := range sortedKeys(tools) {
		if _, ok := tools[name].(string); !ok {
			return fmt.Errorf("tool %s: path must be a string", name)
		}
	}

	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
