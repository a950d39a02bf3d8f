package pipeline

import (
	"context"
	"os"
	"strconv"
	"strings"

	"go.dot.industries/cccpt/internal/project"
)

// paranoidMissing is assumed when the setting cannot be read.
const paranoidMissing = 10

// DebugOptions are the inputs of Debug.
type DebugOptions struct {
	Match     string
	PassArgs  []string
	SkipBuild bool
}

// Debug builds in debug mode and records every matching debug test
// executable with rr. rr needs perf_event_paranoid at 1 or lower.
func (o *Orchestrator) Debug(ctx context.Context, opts DebugOptions) Result {
	defer o.scope.Enter()()

	if level := o.paranoidLevel(); level > 1 {
		o.status.Error("perf_event_paranoid is %d, rr needs it at 1 or lower. Run:", level)
		o.status.Detail("sudo bash -c 'echo 1 > %s'", o.paranoidPath)
		return Fail(PhasePrecondition, 1)
	}

	return o.Test(ctx, TestOptions{
		Mode:      project.Debug,
		Match:     opts.Match,
		PassArgs:  opts.PassArgs,
		SkipBuild: opts.SkipBuild,
		Prefix:    []string{o.tool("rr"), "record"},
	})
}

func (o *Orchestrator) paranoidLevel() int {
	data, err := os.ReadFile(o.paranoidPath)
	if err != nil {
		return paranoidMissing
	}

	level, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return paranoidMissing
	}
	return level
}
