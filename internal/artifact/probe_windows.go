//go:build windows

package artifact

import (
	"os"
)

// DebugInfoSupported reports whether HasDebugInfo can tell debug builds
// from release builds on this platform.
const DebugInfoSupported = false

// DefaultPatterns are the base-name globs identifying test executables.
var DefaultPatterns = []string{"*Tests*.exe", "*Tester*.exe", "*unitTest*.exe"}

type hostProber struct{}

func (hostProber) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (hostProber) HasDebugInfo(string) (bool, error) {
	return false, nil
}
