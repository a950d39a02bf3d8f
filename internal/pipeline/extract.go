package pipeline

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed extract_conanfile.py
var extractScript string

// ExtractConanfile loads the Conan recipe at path with python and returns
// a conanfile.txt holding its requires and generators sections.
func (o *Orchestrator) ExtractConanfile(ctx context.Context, path string) (string, error) {
	path = o.abs(path)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("reading recipe: %w", err)
	}

	python := o.tool("python")
	out, code, err := o.capture(ctx, o.workDir, python, "-c", extractScript, path)
	if err != nil {
		return "", fmt.Errorf("running %s: %w", python, err)
	}
	if code != 0 {
		return "", fmt.Errorf("extracting %s: %s exited with code %d", path, python, code)
	}
	return out, nil
}
