package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{
		"src/main.cpp",
		"src/util.h",
		"include/lib/api.hpp",
		"tools/gen.py",
		"README.md",
		"build-debug-linux/generated.cpp",
		"build-debug-linux/keep/config.h",
		".git/hooks/x.py",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return root
}

func TestList(t *testing.T) {
	root := setupTree(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name: "defaults",
			want: []string{"include/lib/api.hpp", "src/main.cpp", "src/util.h", "tools/gen.py"},
		},
		{
			name:   "custom pattern",
			filter: Filter{Patterns: []string{"**/*.md"}},
			want:   []string{"README.md"},
		},
		{
			name:   "include overrides ignore",
			filter: Filter{Patterns: []string{"**/*.h"}, Include: []string{"build*/keep/**"}},
			want:   []string{"build-debug-linux/keep/config.h", "src/util.h"},
		},
		{
			name:   "empty ignore lists everything",
			filter: Filter{Patterns: []string{"**/*.py"}, Ignore: []string{}},
			want:   []string{".git/hooks/x.py", "tools/gen.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List(root, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
