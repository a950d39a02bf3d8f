// Package envsynth builds the environment handed to external tools from
// configuration, dependency-manager descriptors and activation scripts.
package envsynth

import (
	"os"
	"sort"
)

// Environment is a set of variables held as data. Nothing in this package
// writes the real process environment; the exec runner passes Environ() to
// each child process.
type Environment struct {
	vars      map[string]string
	separator string
}

// Option configures an Environment.
type Option func(*Environment)

// WithSeparator overrides the list separator used to join and split
// path-like values. It defaults to the host's path list separator.
func WithSeparator(sep string) Option {
	return func(e *Environment) {
		e.separator = sep
	}
}

// New creates an Environment seeded with a copy of vars.
func New(vars map[string]string, opts ...Option) *Environment {
	e := &Environment{
		vars:      make(map[string]string, len(vars)),
		separator: string(os.PathListSeparator),
	}
	for k, v := range vars {
		e.vars[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromOS snapshots the current process environment.
func FromOS(opts ...Option) *Environment {
	return New(ParseEnviron(os.Environ()), opts...)
}

// Separator returns the list separator.
func (e *Environment) Separator() string {
	return e.separator
}

// Lookup returns the value of name and whether it is set.
func (e *Environment) Lookup(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Get returns the value of name, or "" when unset.
func (e *Environment) Get(name string) string {
	return e.vars[name]
}

// Set assigns value to name.
func (e *Environment) Set(name, value string) {
	e.vars[name] = value
}

// Unset removes name.
func (e *Environment) Unset(name string) {
	delete(e.vars, name)
}

// Environ returns the variables as sorted KEY=VALUE entries.
func (e *Environment) Environ() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+e.vars[k])
	}
	return result
}

// Clone returns an independent copy.
func (e *Environment) Clone() *Environment {
	return New(e.vars, WithSeparator(e.separator))
}

// ParseEnviron converts KEY=VALUE entries into a map. Entries without '='
// are skipped.
func ParseEnviron(entries []string) map[string]string {
	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, val, ok := splitEnvEntry(entry)
		if ok {
			result[key] = val
		}
	}
	return result
}

// splitEnvEntry splits a KEY=VALUE string at the first '=' after the first
// byte. Windows keeps per-drive entries such as "=C:=C:\dir" whose key
// starts with '='.
func splitEnvEntry(entry string) (string, string, bool) {
	for i := 1; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:], true
		}
	}

	return "", "", false
}
