package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.dot.industries/cccpt/internal/project"
)

func TestBuild_ConfiguresFirstTime(t *testing.T) {
	root := newProject(t, "CMakeLists.txt")
	tf := &toolFake{}
	inv := &fakeInvoker{handler: tf.handle(t)}
	o := newOrchestrator(t, root, nil, inv)

	if res := o.Build(context.Background(), BuildOptions{Mode: project.Release, Jobs: 4}); !res.OK() {
		t.Fatalf("Build() = %+v, want success", res)
	}
	if res := o.Build(context.Background(), BuildOptions{Mode: project.Release, Jobs: 4, Target: "demo"}); !res.OK() {
		t.Fatalf("second Build() = %+v, want success", res)
	}

	want := []string{
		"cmake " + root + " -DCMAKE_BUILD_TYPE=Release",
		"cmake --build . --config Release --parallel 4",
		"cmake --build . --config Release --parallel 4 --target demo",
	}
	if diff := cmp.Diff(want, inv.commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ForceConfigure(t *testing.T) {
	root := newProject(t, "CMakeLists.txt")
	writeFile(t, filepath.Join(root, "build-debug-linux", "CMakeCache.txt"), "")
	inv := &fakeInvoker{}
	o := newOrchestrator(t, root, nil, inv)

	if res := o.Build(context.Background(), BuildOptions{ForceConfigure: true, Jobs: 2}); !res.OK() {
		t.Fatalf("Build() = %+v, want success", res)
	}
	if n := inv.countPrefix("cmake " + root); n != 1 {
		t.Errorf("configure ran %d times, want 1", n)
	}
}

func TestBuild_ConfigureFailureIsFatal(t *testing.T) {
	root := newProject(t, "CMakeLists.txt")
	tf := &toolFake{codes: map[string]int{"cmake " + root: 2}}
	inv := &fakeInvoker{handler: tf.handle(t)}
	o := newOrchestrator(t, root, nil, inv)

	res := o.Build(context.Background(), BuildOptions{})
	if diff := cmp.Diff(Result{Code: 2, Phase: PhaseConfigure}, res); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
	if n := inv.countPrefix("cmake --build"); n != 0 {
		t.Errorf("build ran %d times after configure failed", n)
	}
}

func TestBuild_Failure(t *testing.T) {
	root := newProject(t, "CMakeLists.txt")
	tf := &toolFake{codes: map[string]int{"cmake --build": 7}}
	inv := &fakeInvoker{handler: tf.handle(t)}
	o := newOrchestrator(t, root, nil, inv)

	res := o.Build(context.Background(), BuildOptions{})
	if diff := cmp.Diff(Result{Code: 7, Phase: PhaseBuild}, res); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NoBuildDescriptor(t *testing.T) {
	root := newProject(t)
	inv := &fakeInvoker{}
	o := newOrchestrator(t, root, nil, inv)

	if res := o.Build(context.Background(), BuildOptions{}); !res.OK() {
		t.Errorf("Build() = %+v, want success", res)
	}
	if len(inv.calls) != 0 {
		t.Errorf("ran %v, want nothing", inv.commands())
	}
}

func TestBuild_Jobs(t *testing.T) {
	auto := fmt.Sprint(runtime.NumCPU())

	tests := []struct {
		name      string
		requested int
		config    any
		want      string
	}{
		{name: "explicit", requested: 3, want: "3"},
		{name: "explicit wins over config", requested: 5, config: int64(2), want: "5"},
		{name: "from config", config: int64(6), want: "6"},
		{name: "out of range", requested: 4096, want: auto},
		{name: "config out of range", config: int64(0), want: auto},
		{name: "auto", want: auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t, "CMakeLists.txt")
			writeFile(t, filepath.Join(root, "build-debug-linux", "CMakeCache.txt"), "")

			var data map[string]any
			if tt.config != nil {
				data = map[string]any{"project": map[string]any{"build": map[string]any{"jobs": tt.config}}}
			}

			inv := &fakeInvoker{}
			o := newOrchestrator(t, root, data, inv)
			if res := o.Build(context.Background(), BuildOptions{Jobs: tt.requested}); !res.OK() {
				t.Fatalf("Build() = %+v, want success", res)
			}

			want := []string{"cmake --build . --config Debug --parallel " + tt.want}
			if diff := cmp.Diff(want, inv.commands()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
