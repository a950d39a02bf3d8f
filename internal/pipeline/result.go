package pipeline

import "context"

// Phase names the pipeline step a Result came from.
type Phase string

const (
	PhaseNone         Phase = ""
	PhaseEnvironment  Phase = "environment"
	PhaseDependencies Phase = "dependencies"
	PhaseConfigure    Phase = "configure"
	PhaseBuild        Phase = "build"
	PhaseDiscover     Phase = "discover"
	PhaseTest         Phase = "test"
	PhaseCheckout     Phase = "checkout"
	PhasePrecondition Phase = "precondition"
	PhaseHook         Phase = "hook"
	PhaseTag          Phase = "tag"
	PhaseClean        Phase = "clean"
	PhaseRecipes      Phase = "recipes"
	PhaseEditable     Phase = "editable"
)

// Result is the outcome of a pipeline command: the code the process exits
// with and, on failure, the phase that produced it.
type Result struct {
	Code  int
	Phase Phase
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Code == 0
}

// Fail builds a failing result. Codes below 1 become 1.
func Fail(phase Phase, code int) Result {
	return Result{Code: max(code, 1), Phase: phase}
}

// Step is one unit of pipeline work.
type Step func(ctx context.Context) Result

// AbortOnFailure runs steps in order and stops at the first failure,
// returning it. Otherwise it returns the last step's result.
func AbortOnFailure(steps ...Step) Step {
	return func(ctx context.Context) Result {
		var res Result
		for _, step := range steps {
			res = step(ctx)
			if !res.OK() {
				return res
			}
		}
		return res
	}
}

// SumCodes runs every step and returns the sum of the absolute values of
// their codes, tagged with the phase of the first failure.
func SumCodes(steps ...Step) Step {
	return func(ctx context.Context) Result {
		var total Result
		for _, step := range steps {
			res := step(ctx)
			if res.Code == 0 {
				continue
			}
			if total.Code == 0 {
				total.Phase = res.Phase
			}
			total.Code += abs(res.Code)
		}
		return total
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
