package exec

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// forwardedSignals are relayed to a running tool so a test binary or build
// interrupted from the terminal shuts down on its own terms.
var forwardedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}

// ForwardSignals relays terminal interrupts to the tool Invoke is waiting
// on, so a Ctrl-C during a long build or test run reaches cmake or the test
// binary instead of only killing cccpt. The returned function stops the
// relay and must be called once the child has exited.
func ForwardSignals(ctx context.Context, process *os.Process) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, forwardedSignals...)

	done := make(chan struct{})

	go forwardLoop(ctx, process, sigChan, done)

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

// forwardLoop receives signals from sigChan and sends them to the child
// process. It exits when done is closed or the context is cancelled.
func forwardLoop(ctx context.Context, process *os.Process, sigChan <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-sigChan:
			_ = process.Signal(sig)
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
