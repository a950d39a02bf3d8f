package envsynth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadDotenv applies dotenv files in order. Missing files are skipped.
// Values go through the same placeholder handling as LoadVariables.
func (e *Environment) LoadDotenv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("dotenv file not found")
			continue
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("reading dotenv file %s: %w", path, err)
		}

		vars := make(map[string]any, len(values))
		for k, v := range values {
			vars[k] = v
		}
		if err := e.LoadVariables(vars); err != nil {
			return fmt.Errorf("applying dotenv file %s: %w", path, err)
		}
	}

	return nil
}
