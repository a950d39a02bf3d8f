package release

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadWriteVersionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultVersionFile)

	if _, ok, err := ReadVersionFile(path); err != nil || ok {
		t.Fatalf("ReadVersionFile(missing) = ok %v, err %v; want false, nil", ok, err)
	}

	if err := WriteVersionFile(path, "1.4.0"); err != nil {
		t.Fatalf("WriteVersionFile() error = %v", err)
	}

	got, ok, err := ReadVersionFile(path)
	if err != nil || !ok || got != "1.4.0" {
		t.Errorf("ReadVersionFile() = %q, %v, %v; want 1.4.0, true, nil", got, ok, err)
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     string
		strict  bool
		wantErr bool
	}{
		{name: "equal", current: "1.2.3", tag: "1.2.3", strict: true},
		{name: "leading v ignored", current: "1.2.3", tag: "v1.2.3", strict: true},
		{name: "strict mismatch", current: "1.2", tag: "1.2.3", strict: true, wantErr: true},
		{name: "prefix allowed", current: "1.2", tag: "v1.2.3"},
		{name: "prerelease suffix allowed", current: "1.2", tag: "1.2-rc1"},
		{name: "prefix mismatch", current: "1.3", tag: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.current, tt.tag, tt.strict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckVersion() error = %v, wantErr %v", err, tt.wantErr)
			}

			var pe *PreconditionError
			if err != nil && !errors.As(err, &pe) {
				t.Errorf("CheckVersion() error = %T, want *PreconditionError", err)
			}
		})
	}
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     string
		want    string
		wantErr bool
	}{
		{name: "newer patch", current: "1.2.3", tag: "v1.2.4", want: "1.2.4"},
		{name: "newer major", current: "1.2.3", tag: "2.0.0", want: "2.0.0"},
		{name: "no current", current: "", tag: "v0.1.0", want: "0.1.0"},
		{name: "unparseable current accepted", current: "dev", tag: "1.0.0", want: "1.0.0"},
		{name: "same version", current: "1.2.3", tag: "v1.2.3", wantErr: true},
		{name: "downgrade", current: "1.2.3", tag: "1.2.0", wantErr: true},
		{name: "not semver", current: "1.2.3", tag: "release-7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextVersion(tt.current, tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NextVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NextVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverHooks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20-docs", "10-lint", "30-notify"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatalf("failed to write hook: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "15-subdir"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	got, err := DiscoverHooks(dir)
	if err != nil {
		t.Fatalf("DiscoverHooks() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "10-lint"),
		filepath.Join(dir, "20-docs"),
		filepath.Join(dir, "30-notify"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiscoverHooks() mismatch (-want +got):\n%s", diff)
	}

	if err := CheckHooks(got); err != nil {
		t.Errorf("CheckHooks() error = %v", err)
	}
}

func TestDiscoverHooks_MissingDir(t *testing.T) {
	got, err := DiscoverHooks(filepath.Join(t.TempDir(), "none"))
	if err != nil || got != nil {
		t.Errorf("DiscoverHooks() = %v, %v; want nil, nil", got, err)
	}
}

func TestCheckHooks_NotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute permission is not tracked on windows")
	}

	hook := filepath.Join(t.TempDir(), "10-lint")
	if err := os.WriteFile(hook, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("failed to write hook: %v", err)
	}

	var pe *PreconditionError
	if err := CheckHooks([]string{hook}); !errors.As(err, &pe) {
		t.Errorf("CheckHooks() error = %v, want *PreconditionError", err)
	}
}
