package config

import (
	"fmt"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ParseFragment reads one config fragment from fsys. Fragments ending in
// .toml are decoded as TOML, everything else as YAML. An empty document
// yields a nil map and no error.
func ParseFragment(fsys afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return decodeFragment(path, data)
}

func decodeFragment(path string, data []byte) (map[string]any, error) {
	var doc map[string]any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if len(doc) == 0 {
		return nil, nil
	}

	return normalizeMap(doc), nil
}

// EncodeTOML renders the tree as a TOML document.
func EncodeTOML(t *Tree) ([]byte, error) {
	data, err := toml.Marshal(t.Map())
	if err != nil {
		return nil, fmt.Errorf("encoding config as toml: %w", err)
	}
	return data, nil
}

// EncodeYAML renders the tree as a YAML document.
func EncodeYAML(t *Tree) ([]byte, error) {
	data, err := yaml.Marshal(t.Map())
	if err != nil {
		return nil, fmt.Errorf("encoding config as yaml: %w", err)
	}
	return data, nil
}
