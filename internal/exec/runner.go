// Package exec runs the external build tools. It is the only place the
// synthesized environment reaches a real process.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Invocation describes one external tool run.
type Invocation struct {
	Argv []string
	Dir  string
	// Env is the complete child environment as KEY=VALUE entries.
	Env []string
	// Capture collects stdout into Result.Output instead of streaming it.
	Capture bool
}

// Result is the outcome of a tool run that started.
type Result struct {
	ExitCode int
	Output   string
}

// Invoker runs external tools. The returned error is non-nil only when the
// tool could not be started; a tool that ran and failed reports a non-zero
// ExitCode.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) (Result, error)
}

// OSInvoker runs tools as child processes of the current process.
type OSInvoker struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSInvoker returns an invoker wired to the process's standard streams.
func NewOSInvoker() *OSInvoker {
	return &OSInvoker{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Invoke starts argv[0], resolved against the PATH in inv.Env, and waits
// for it. Interrupt signals received meanwhile are forwarded to the child.
func (o *OSInvoker) Invoke(ctx context.Context, inv Invocation) (Result, error) {
	if len(inv.Argv) == 0 {
		return Result{ExitCode: 1}, fmt.Errorf("command must not be empty")
	}

	name := LookPath(inv.Argv[0], inv.Env)
	log.Debug().Strs("argv", inv.Argv).Str("dir", inv.Dir).Str("resolved", name).Msg("invoking")

	cmd := exec.CommandContext(ctx, name, inv.Argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	cmd.Stdin = o.Stdin
	cmd.Stdout = o.Stdout
	cmd.Stderr = o.Stderr

	var out bytes.Buffer
	if inv.Capture {
		cmd.Stdin = nil
		cmd.Stdout = &out
	}

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: ExitCode(err)}, fmt.Errorf("starting command %q: %w", inv.Argv[0], err)
	}

	cleanup := ForwardSignals(ctx, cmd.Process)
	defer cleanup()

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Result{ExitCode: ExitCode(err)}, fmt.Errorf("waiting for command %q: %w", inv.Argv[0], err)
	}

	return Result{ExitCode: ExitCode(err), Output: out.String()}, nil
}

// ExitCode extracts the exit code from an error returned by a process run.
// Returns 0 if err is nil. Returns the process exit code if err is an
// *exec.ExitError. Returns 1 for all other error types.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}
