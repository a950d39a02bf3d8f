package status

import (
	"bytes"
	"testing"
)

func TestReporter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.Info("Running %s", "coreTests")
	r.Detail("sudo sysctl kernel.perf_event_paranoid=1")
	r.Success("Tagged %s", "v1.0.0")
	r.Warn("not a git repository")
	r.Error("Tests failed")

	want := "Running coreTests\n" +
		"  sudo sysctl kernel.perf_event_paranoid=1\n" +
		"Tagged v1.0.0\n" +
		"not a git repository\n" +
		"Tests failed\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestReporter_ColorOnNonTerminalStaysReadable(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Error("boom")

	if !bytes.Contains(buf.Bytes(), []byte("boom")) {
		t.Errorf("output = %q, want it to contain the message", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Info("nothing to see")
}
