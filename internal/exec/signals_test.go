//go:build !windows

package exec

import (
	"context"
	"os"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func startSleeper(t *testing.T, script string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sh", "-c", script)
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start process: %v", err)
	}
	return cmd
}

func TestForwardSignals_cleanup(t *testing.T) {
	cmd := startSleeper(t, "sleep 10")
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	cleanup := ForwardSignals(context.Background(), cmd.Process)
	cleanup()
}

func TestForwardSignals_contextCancellation(t *testing.T) {
	cmd := startSleeper(t, "sleep 10")
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cleanup := ForwardSignals(ctx, cmd.Process)
	defer cleanup()

	cancel()
}

func TestForwardLoop_relaysSignal(t *testing.T) {
	cmd := startSleeper(t, "trap 'exit 0' TERM; sleep 10 & wait")

	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	go forwardLoop(context.Background(), cmd.Process, sigChan, done)
	defer close(done)

	// Give the shell time to install its trap.
	time.Sleep(200 * time.Millisecond)
	sigChan <- syscall.SIGTERM

	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	select {
	case err := <-waited:
		if code := ExitCode(err); code != 0 {
			t.Errorf("child exit code = %d, want 0 after trapped SIGTERM", code)
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("child did not exit after forwarded SIGTERM")
	}
}
