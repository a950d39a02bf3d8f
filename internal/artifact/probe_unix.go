//go:build !windows

package artifact

import (
	"debug/elf"
	"debug/macho"
	"os"

	"golang.org/x/sys/unix"
)

// DebugInfoSupported reports whether HasDebugInfo can tell debug builds
// from release builds on this platform.
const DebugInfoSupported = true

// DefaultPatterns are the base-name globs identifying test executables.
var DefaultPatterns = []string{"*Tests*", "*Tester*", "*unitTest*"}

type hostProber struct{}

func (hostProber) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// HasDebugInfo looks for a DWARF info section in ELF or Mach-O binaries.
// Files in other formats, scripts included, carry no debug information.
func (hostProber) HasDebugInfo(path string) (bool, error) {
	if f, err := elf.Open(path); err == nil {
		defer f.Close()
		return f.Section(".debug_info") != nil || f.Section(".zdebug_info") != nil, nil
	}

	if f, err := macho.Open(path); err == nil {
		defer f.Close()
		return f.Section("__debug_info") != nil || f.Section("__zdebug_info") != nil, nil
	}

	return false, nil
}
