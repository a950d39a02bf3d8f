// Package release holds the checks and file updates that surround tagging a
// release.
package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Default locations, relative to the project root.
const (
	DefaultVersionFile = "version.txt"
	DefaultHooksDir    = ".cccpt/pre-release.d"
)

// PreconditionError reports why a release cannot proceed.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// ReadVersionFile returns the trimmed content of the version file and
// whether it exists.
func ReadVersionFile(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading version file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// WriteVersionFile replaces the version file content.
func WriteVersionFile(path, version string) error {
	if err := os.WriteFile(path, []byte(version+"\n"), 0644); err != nil {
		return fmt.Errorf("writing version file %s: %w", path, err)
	}
	return nil
}

// TagVersion returns tag without a leading "v".
func TagVersion(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

// CheckVersion verifies that the recorded version agrees with tag. With
// strict set the two must be equal; otherwise tag may extend the recorded
// version (1.2 allows 1.2.3 and 1.2-rc1).
func CheckVersion(current, tag string, strict bool) error {
	want := TagVersion(tag)
	current = TagVersion(current)

	if strict {
		if current != want {
			return preconditionf("version file says %s but tag is %s", current, tag)
		}
		return nil
	}

	if !strings.HasPrefix(want, current) {
		return preconditionf("tag %s does not match version file %s", tag, current)
	}
	return nil
}

// NextVersion validates tag as the version to bump to. The tag must be a
// semantic version and, when current is one too, strictly newer.
func NextVersion(current, tag string) (string, error) {
	next, err := semver.NewVersion(TagVersion(tag))
	if err != nil {
		return "", preconditionf("tag %s is not a semantic version: %v", tag, err)
	}

	if current != "" {
		if prev, err := semver.NewVersion(TagVersion(current)); err == nil && !prev.LessThan(next) {
			return "", preconditionf("tag %s is not newer than version file %s", tag, current)
		}
	}

	return TagVersion(tag), nil
}
