package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.dot.industries/cccpt/internal/artifact"
)

func TestDebug_ParanoidKernel(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		write   bool
	}{
		{name: "restricted", setting: "2\n", write: true},
		{name: "unreadable value", setting: "high\n", write: true},
		{name: "missing", write: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t, "CMakeLists.txt")
			inv := &fakeInvoker{}
			o := newOrchestrator(t, root, nil, inv)
			if tt.write {
				writeFile(t, filepath.Join(root, "no-paranoid"), tt.setting)
			}

			res := o.Debug(context.Background(), DebugOptions{})
			if diff := cmp.Diff(Result{Code: 1, Phase: PhasePrecondition}, res); diff != "" {
				t.Errorf("Debug() mismatch (-want +got):\n%s", diff)
			}
			if len(inv.calls) != 0 {
				t.Errorf("ran %v, want nothing", inv.commands())
			}
		})
	}
}

func TestDebug_RecordsDebugTests(t *testing.T) {
	if !artifact.DebugInfoSupported {
		t.Skip("debug information is not probed on this platform")
	}

	root := newProject(t, "CMakeLists.txt")
	writeFile(t, filepath.Join(root, "no-paranoid"), "1\n")
	tf := &toolFake{built: []string{"bin/dbgCoreTests", "bin/dbgNetTests", "bin/plainTests"}}
	inv := &fakeInvoker{handler: tf.handle(t)}
	o := newOrchestrator(t, root, map[string]any{
		"tools": map[string]any{"rr": "/usr/local/bin/rr"},
	}, inv)

	if res := o.Debug(context.Background(), DebugOptions{Match: "Net"}); !res.OK() {
		t.Fatalf("Debug() = %+v, want success", res)
	}

	var recorded []string
	for _, cmd := range inv.commands() {
		if strings.HasPrefix(cmd, "/usr/local/bin/rr record ") {
			recorded = append(recorded, filepath.Base(cmd))
		}
	}
	if diff := cmp.Diff([]string{"dbgNetTests"}, recorded); diff != "" {
		t.Errorf("recorded mismatch (-want +got):\n%s", diff)
	}
	if n := inv.countPrefix("cmake " + root + " -DCMAKE_BUILD_TYPE=Debug"); n != 1 {
		t.Errorf("debug configure ran %d times, want 1", n)
	}
}
