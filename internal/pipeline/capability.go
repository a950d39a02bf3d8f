package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/envsynth"
	"go.dot.industries/cccpt/internal/exec"
)

const ninjaGenerator = "Ninja"

// GeneratorDetector picks a CMake generator when none is configured. An
// empty result leaves the choice to CMake.
type GeneratorDetector interface {
	Detect(ctx context.Context, cmake string) string
}

// capabilityCache memoizes tool probes for the life of the process.
type capabilityCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func newCapabilityCache() *capabilityCache {
	return &capabilityCache{entries: make(map[string]string)}
}

func (c *capabilityCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *capabilityCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

// helpDetector selects Ninja when a ninja binary is on the synthesized PATH
// and the CMake binary lists Ninja among its generators.
type helpDetector struct {
	invoker exec.Invoker
	env     *envsynth.Environment
	cache   *capabilityCache
}

// NewGeneratorDetector returns the default detector. Results are memoized
// per CMake binary.
func NewGeneratorDetector(invoker exec.Invoker, env *envsynth.Environment) GeneratorDetector {
	return &helpDetector{invoker: invoker, env: env, cache: newCapabilityCache()}
}

func (d *helpDetector) Detect(ctx context.Context, cmake string) string {
	if gen, ok := d.cache.Get(cmake); ok {
		return gen
	}

	gen := d.probe(ctx, cmake)
	log.Debug().Str("cmake", cmake).Str("generator", gen).Msg("detected cmake generator")
	d.cache.Set(cmake, gen)
	return gen
}

func (d *helpDetector) probe(ctx context.Context, cmake string) string {
	environ := d.env.Environ()
	if _, ok := exec.Find("ninja", environ); !ok {
		return ""
	}

	res, err := d.invoker.Invoke(ctx, exec.Invocation{
		Argv:    []string{cmake, "--help"},
		Env:     environ,
		Capture: true,
	})
	if err != nil || res.ExitCode != 0 {
		return ""
	}

	if listsGenerator(res.Output, ninjaGenerator) {
		return ninjaGenerator
	}
	return ""
}

// listsGenerator scans the Generators section of `cmake --help` output.
// The default generator is marked with a leading '*'.
func listsGenerator(help, name string) bool {
	inSection := false
	for _, line := range strings.Split(help, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Generators") {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		entry := strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
		if entry == name || strings.HasPrefix(entry, name+" ") || strings.HasPrefix(entry, name+"=") {
			return true
		}
	}
	return false
}
