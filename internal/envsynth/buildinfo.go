package envsynth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/ini.v1"
)

// BuildInfoFile is the name of the dependency manager's build-info file.
const BuildInfoFile = "conanbuildinfo.txt"

const envSectionPrefix = "ENV_"

var buildInfoOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	SkipUnrecognizableLines: true,
	AllowBooleanKeys:        true,
	KeyValueDelimiters:      "=",
}

// LoadFromBuildInfo applies every ENV_* section of a build-info file, one
// section at a time in file order. Values starting with '[' are list
// literals. A missing file is not an error.
func (e *Environment) LoadFromBuildInfo(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", path).Msg("no build info file")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading build info %s: %w", path, err)
	}

	f, err := ini.LoadSources(buildInfoOptions, data)
	if err != nil {
		return fmt.Errorf("parsing build info %s: %w", path, err)
	}

	for _, section := range f.Sections() {
		if !strings.HasPrefix(section.Name(), envSectionPrefix) {
			continue
		}

		vars := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			value := key.Value()
			if !strings.HasPrefix(value, "[") {
				vars[key.Name()] = value
				continue
			}

			list, err := parseListLiteral(value)
			if err != nil {
				return fmt.Errorf("build info %s [%s] %s: %w", path, section.Name(), key.Name(), err)
			}
			vars[key.Name()] = list
		}

		log.Debug().Str("section", section.Name()).Int("vars", len(vars)).Msg("loading build info section")
		if err := e.LoadVariables(vars); err != nil {
			return err
		}
	}

	return nil
}

// parseListLiteral decodes a JSON-style list of strings. Backslashes are
// doubled first so Windows paths survive JSON unescaping.
func parseListLiteral(value string) ([]any, error) {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	if !gjson.Valid(escaped) {
		return nil, fmt.Errorf("invalid list literal %q", value)
	}

	result := gjson.Parse(escaped)
	if !result.IsArray() {
		return nil, fmt.Errorf("list literal %q is not an array", value)
	}

	items := result.Array()
	list := make([]any, 0, len(items))
	for _, item := range items {
		list = append(list, item.String())
	}

	return list, nil
}
