package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// writeTestFile is a test helper that writes content to a file path.
func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file %s: %v", path, err)
	}
}

// writeFragment writes a config fragment into an in-memory filesystem,
// creating parent directories.
func writeFragment(t *testing.T, fsys afero.Fs, path string, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fragment %s: %v", path, err)
	}
}
