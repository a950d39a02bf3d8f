package vcs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.dot.industries/cccpt/internal/exec"
)

// recordingInvoker records invocations and answers from a table keyed by the
// space-joined argv.
type recordingInvoker struct {
	calls   []exec.Invocation
	results map[string]exec.Result
	err     error
}

func (r *recordingInvoker) Invoke(_ context.Context, inv exec.Invocation) (exec.Result, error) {
	r.calls = append(r.calls, inv)
	if r.err != nil {
		return exec.Result{ExitCode: 1}, r.err
	}
	return r.results[strings.Join(inv.Argv, " ")], nil
}

func (r *recordingInvoker) argvs() [][]string {
	out := make([][]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Argv)
	}
	return out
}

func TestGit_TopLevel(t *testing.T) {
	inv := &recordingInvoker{results: map[string]exec.Result{
		"git rev-parse --show-toplevel": {Output: "/src/repo\n"},
	}}
	g := New(inv, "", func() []string { return []string{"A=1"} })

	got, err := g.TopLevel(context.Background(), "/src/repo/sub")
	if err != nil {
		t.Fatalf("TopLevel() error = %v", err)
	}
	if got != "/src/repo" {
		t.Errorf("TopLevel() = %q, want %q", got, "/src/repo")
	}

	call := inv.calls[0]
	if call.Dir != "/src/repo/sub" || !call.Capture {
		t.Errorf("invocation = %+v, want capture in /src/repo/sub", call)
	}
	if diff := cmp.Diff([]string{"A=1"}, call.Env); diff != "" {
		t.Errorf("Env mismatch (-want +got):\n%s", diff)
	}
}

func TestGit_TopLevelOutsideRepository(t *testing.T) {
	inv := &recordingInvoker{results: map[string]exec.Result{
		"git rev-parse --show-toplevel": {ExitCode: 128},
	}}

	if _, err := New(inv, "git", nil).TopLevel(context.Background(), "/tmp"); err == nil {
		t.Fatal("TopLevel() expected error for non-zero exit")
	}
}

func TestGit_TagExistsAndDirty(t *testing.T) {
	inv := &recordingInvoker{results: map[string]exec.Result{
		"git tag --list v1.0.0":  {Output: "v1.0.0\n"},
		"git tag --list v2.0.0":  {Output: ""},
		"git status --porcelain": {Output: " M src/main.cpp\n"},
	}}
	g := New(inv, "git", nil)
	ctx := context.Background()

	if ok, err := g.TagExists(ctx, "/r", "v1.0.0"); err != nil || !ok {
		t.Errorf("TagExists(v1.0.0) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := g.TagExists(ctx, "/r", "v2.0.0"); err != nil || ok {
		t.Errorf("TagExists(v2.0.0) = %v, %v; want false, nil", ok, err)
	}
	if dirty, err := g.IsDirty(ctx, "/r"); err != nil || !dirty {
		t.Errorf("IsDirty() = %v, %v; want true, nil", dirty, err)
	}
}

func TestGit_Commands(t *testing.T) {
	inv := &recordingInvoker{results: map[string]exec.Result{}}
	g := New(inv, "/usr/bin/git", nil)
	ctx := context.Background()

	if _, err := g.Clone(ctx, "/src", "/tmp/x"); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if _, err := g.Checkout(ctx, "/tmp/x", "v1"); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if _, err := g.Tag(ctx, "/src", "v1", "Release v1"); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}
	if _, err := g.Commit(ctx, "/src", "Bump version", "version.txt"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if _, err := g.Clean(ctx, "/src"); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	want := [][]string{
		{"/usr/bin/git", "clone", "/src", "/tmp/x"},
		{"/usr/bin/git", "checkout", "v1"},
		{"/usr/bin/git", "tag", "-a", "v1", "-m", "Release v1"},
		{"/usr/bin/git", "add", "--", "version.txt"},
		{"/usr/bin/git", "commit", "-m", "Bump version", "--", "version.txt"},
		{"/usr/bin/git", "clean", "-f", "-d"},
	}
	if diff := cmp.Diff(want, inv.argvs()); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestGit_CommitStopsWhenAddFails(t *testing.T) {
	inv := &recordingInvoker{results: map[string]exec.Result{
		"git add -- version.txt": {ExitCode: 1},
	}}

	code, err := New(inv, "git", nil).Commit(context.Background(), "/r", "msg", "version.txt")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if code != 1 || len(inv.calls) != 1 {
		t.Errorf("Commit() = %d after %d calls, want 1 after 1", code, len(inv.calls))
	}
}

func TestGit_StartFailure(t *testing.T) {
	inv := &recordingInvoker{err: errors.New("executable file not found")}

	if _, err := New(inv, "git", nil).Clone(context.Background(), "a", "b"); err == nil {
		t.Fatal("Clone() expected error when git cannot start")
	}
}
