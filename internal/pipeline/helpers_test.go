package pipeline

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.dot.industries/cccpt/internal/artifact"
	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/envsynth"
	"go.dot.industries/cccpt/internal/exec"
)

const testPlatform = "linux"

// fakeInvoker records invocations instead of starting processes. The
// handler, when set, decides each result and may touch the filesystem the
// way the real tool would.
type fakeInvoker struct {
	mu      sync.Mutex
	calls   []exec.Invocation
	handler func(inv exec.Invocation) exec.Result
}

func (f *fakeInvoker) Invoke(_ context.Context, inv exec.Invocation) (exec.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	if f.handler == nil {
		return exec.Result{}, nil
	}
	return f.handler(inv), nil
}

// commands returns the space-joined argv of every invocation.
func (f *fakeInvoker) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.Join(c.Argv, " "))
	}
	return out
}

func (f *fakeInvoker) countPrefix(prefix string) int {
	n := 0
	for _, cmd := range f.commands() {
		if strings.HasPrefix(cmd, prefix) {
			n++
		}
	}
	return n
}

// toolFake simulates cmake, conan and git for orchestration tests.
type toolFake struct {
	codes map[string]int
	// gitOutput answers captured git queries keyed by the argv after "git".
	gitOutput map[string]string
	// testCodes maps a test executable's base name to its exit code.
	testCodes map[string]int
	// built lists the slash-separated paths, relative to the build dir, of
	// the files "cmake --build" leaves behind. Files with the same base name
	// have the same content.
	built []string
}

func (tf *toolFake) handle(t *testing.T) func(exec.Invocation) exec.Result {
	return func(inv exec.Invocation) exec.Result {
		cmd := strings.Join(inv.Argv, " ")
		for prefix, code := range tf.codes {
			if strings.HasPrefix(cmd, prefix) {
				return exec.Result{ExitCode: code}
			}
		}

		switch {
		case inv.Argv[0] == "git" && inv.Capture:
			return exec.Result{Output: tf.gitOutput[strings.Join(inv.Argv[1:], " ")]}
		case strings.HasPrefix(cmd, "cmake --build"):
			for _, name := range tf.built {
				writeFile(t, filepath.Join(inv.Dir, filepath.FromSlash(name)), "binary "+path.Base(name))
			}
		case inv.Argv[0] == "cmake":
			writeFile(t, filepath.Join(inv.Dir, "CMakeCache.txt"), "")
		default:
			for _, arg := range inv.Argv {
				if code, ok := tf.testCodes[filepath.Base(arg)]; ok {
					return exec.Result{ExitCode: code}
				}
			}
		}
		return exec.Result{}
	}
}

// fakeProber treats every file as executable; names containing "dbg" carry
// debug information.
type fakeProber struct{}

func (fakeProber) IsExecutable(string) bool { return true }

func (fakeProber) HasDebugInfo(path string) (bool, error) {
	return strings.Contains(filepath.Base(path), "dbg"), nil
}

type staticDetector string

func (d staticDetector) Detect(context.Context, string) string { return string(d) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

// newProject creates a project root holding the given files.
func newProject(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		content := ""
		if f == "CMakeLists.txt" {
			content = "cmake_minimum_required(VERSION 3.15)\nproject(demo CXX)\n"
		}
		writeFile(t, filepath.Join(root, f), content)
	}
	return root
}

func newOrchestrator(t *testing.T, root string, data map[string]any, inv exec.Invoker) *Orchestrator {
	t.Helper()

	tree := config.NewTree(data)
	if err := tree.Set(config.PathRoot, root); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := tree.Get(config.PathTestPatterns); !ok {
		if err := tree.Set(config.PathTestPatterns, []any{"*Tests*"}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	env := envsynth.New(map[string]string{"PATH": filepath.Join(root, "no-tools")})
	return New(NewScope(tree), env, inv, root,
		WithPlatform(testPlatform),
		WithGeneratorDetector(staticDetector("")),
		WithScanner(artifact.New(artifact.WithProber(fakeProber{}))),
		WithParanoidPath(filepath.Join(root, "no-paranoid")),
	)
}
