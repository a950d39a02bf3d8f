package envsynth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

var descriptorOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	SkipUnrecognizableLines: true,
	PreserveSurroundedQuote: true,
	KeyValueDelimiters:      "=",
}

// LoadFromDescriptorFile applies KEY=VALUE descriptor files written by the
// dependency manager. When path is a directory every file matching the
// platform descriptor pattern inside it is applied in name order. A missing
// path is not an error.
func (e *Environment) LoadFromDescriptorFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no environment descriptor")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading environment descriptor %s: %w", path, err)
	}

	if !info.IsDir() {
		return e.loadDescriptor(path)
	}

	candidates, err := doublestar.Glob(os.DirFS(path), DescriptorPattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("searching %s for environment descriptors: %w", path, err)
	}

	for _, name := range candidates {
		if err := e.loadDescriptor(filepath.Join(path, filepath.FromSlash(name))); err != nil {
			return err
		}
	}

	return nil
}

func (e *Environment) loadDescriptor(path string) error {
	log.Debug().Str("path", path).Msg("loading environment descriptor")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading environment descriptor %s: %w", path, err)
	}

	vars, err := parseDescriptor(data)
	if err != nil {
		return fmt.Errorf("parsing environment descriptor %s: %w", path, err)
	}

	return e.LoadVariables(vars)
}

// parseDescriptor reads section-less KEY=VALUE lines. Key case is preserved
// and a repeated key keeps its last value.
func parseDescriptor(data []byte) (map[string]any, error) {
	f, err := ini.LoadSources(descriptorOptions, data)
	if err != nil {
		return nil, err
	}

	keys := f.Section(ini.DefaultSection).Keys()
	vars := make(map[string]any, len(keys))
	for _, k := range keys {
		vars[k.Name()] = k.Value()
	}

	return vars, nil
}
