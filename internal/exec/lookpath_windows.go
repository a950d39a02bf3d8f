//go:build windows

package exec

import (
	"path/filepath"
	"strings"
)

func candidates(path string, env []string) []string {
	if filepath.Ext(path) != "" {
		return []string{path}
	}

	exts := envValue(env, "PATHEXT")
	if exts == "" {
		exts = ".com;.exe;.bat;.cmd"
	}

	var out []string
	for _, ext := range strings.Split(exts, ";") {
		if ext != "" {
			out = append(out, path+strings.ToLower(ext))
		}
	}
	return out
}

func isExecutableFile(path string) bool {
	_, ok := isRegularFile(path)
	return ok
}
