// Package project knows the on-disk layout of a CMake/Conan project: where
// its root is, where build trees go and which descriptor files matter.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrRootNotFound is returned when the project root cannot be determined.
var ErrRootNotFound = errors.New("project root not found")

// Descriptor file names.
const (
	BuildDescriptor  = "CMakeLists.txt"
	ConfiguredMarker = "CMakeCache.txt"
)

// manifestNames lists dependency manifests in lookup order.
var manifestNames = []string{"conanfile.py", "conanfile.txt"}

// Mode selects a debug or release build.
type Mode int

const (
	Debug Mode = iota
	Release
)

// ModeFor maps a release flag to a Mode.
func ModeFor(release bool) Mode {
	if release {
		return Release
	}
	return Debug
}

// String returns "debug" or "release".
func (m Mode) String() string {
	if m == Release {
		return "release"
	}
	return "debug"
}

// BuildType returns the CMake build type for m.
func (m Mode) BuildType() string {
	if m == Release {
		return "Release"
	}
	return "Debug"
}

// TopLeveler reports the top-level directory of the repository holding dir.
type TopLeveler interface {
	TopLevel(ctx context.Context, dir string) (string, error)
}

// ResolveRoot returns the project root for dir. Failures wrap
// ErrRootNotFound.
func ResolveRoot(ctx context.Context, vcs TopLeveler, dir string) (string, error) {
	top, err := vcs.TopLevel(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}
	if top == "" {
		return "", fmt.Errorf("%w: empty top-level for %s", ErrRootNotFound, dir)
	}
	return filepath.Clean(top), nil
}

// HostPlatform names the platform used in default build directory names.
func HostPlatform() string {
	return runtime.GOOS
}

// BuildDir returns the default build directory for root, mode and platform.
func BuildDir(root string, mode Mode, platform string) string {
	return filepath.Join(root, fmt.Sprintf("build-%s-%s", mode, platform))
}

// HasBuildDescriptor reports whether root holds a CMakeLists.txt.
func HasBuildDescriptor(root string) bool {
	return isFile(filepath.Join(root, BuildDescriptor))
}

// IsConfigured reports whether buildDir holds a configured build tree.
func IsConfigured(buildDir string) bool {
	return isFile(filepath.Join(buildDir, ConfiguredMarker))
}

// FindManifest returns the dependency manifest to install from. A manifest
// inside buildDir wins over one in root; within a directory conanfile.py
// wins over conanfile.txt.
func FindManifest(buildDir, root string) (string, bool) {
	for _, dir := range []string{buildDir, root} {
		for _, name := range manifestNames {
			path := filepath.Join(dir, name)
			if isFile(path) {
				return path, true
			}
		}
	}
	return "", false
}

// NameInfo is the project name declared in CMakeLists.txt.
type NameInfo struct {
	Name string
	// Declarations counts project( calls; the first one names the project.
	Declarations int
}

// Name reads the project name from the first project( declaration in
// root's CMakeLists.txt.
func Name(root string) (NameInfo, error) {
	data, err := os.ReadFile(filepath.Join(root, BuildDescriptor))
	if err != nil {
		return NameInfo{}, fmt.Errorf("reading %s: %w", BuildDescriptor, err)
	}

	var info NameInfo
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(strings.ToLower(line), "project(")
		if idx < 0 || (idx > 0 && isIdentChar(line[idx-1])) {
			continue
		}

		info.Declarations++
		if info.Declarations == 1 {
			info.Name = firstArgument(line[idx+len("project("):])
		}
	}

	return info, nil
}

func firstArgument(rest string) string {
	rest = strings.TrimSpace(rest)
	end := strings.IndexAny(rest, " \t)")
	if end >= 0 {
		rest = rest[:end]
	}
	return strings.Trim(rest, `"`)
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
