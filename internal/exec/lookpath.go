package exec

import (
	"os"
	"path/filepath"
	"strings"
)

// LookPath resolves file against the PATH entry of env rather than the
// PATH of the current process, so tools added by dependency descriptors are
// found. Names containing a path separator, or names not found, are
// returned unchanged.
func LookPath(file string, env []string) string {
	if path, ok := Find(file, env); ok {
		return path
	}
	return file
}

// Find searches the PATH entry of env for an executable named file.
func Find(file string, env []string) (string, bool) {
	if strings.ContainsAny(file, `/\`) {
		return "", false
	}

	for _, dir := range filepath.SplitList(envValue(env, "PATH")) {
		if dir == "" {
			dir = "."
		}
		for _, candidate := range candidates(filepath.Join(dir, file), env) {
			if isExecutableFile(candidate) {
				return candidate, true
			}
		}
	}

	return "", false
}

func envValue(env []string, key string) string {
	value := ""
	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if ok && strings.EqualFold(k, key) {
			value = v
		}
	}
	return value
}

func isRegularFile(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}
