//go:build !windows

package exec

func candidates(path string, _ []string) []string {
	return []string{path}
}

func isExecutableFile(path string) bool {
	info, ok := isRegularFile(path)
	return ok && info.Mode().Perm()&0o111 != 0
}
