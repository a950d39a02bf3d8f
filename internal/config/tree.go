package config

import (
	"fmt"
	"sort"
	"strings"
)

// Tree is a configuration document addressed by slash-delimited paths such as
// "/project/build-dir". The leading slash is optional.
type Tree struct {
	root map[string]any
}

// NewTree wraps data in a Tree. The map is normalized and owned by the tree
// afterwards; a nil map yields an empty tree.
func NewTree(data map[string]any) *Tree {
	if data == nil {
		data = make(map[string]any)
	}
	return &Tree{root: normalizeMap(data)}
}

// Get returns the value stored at path. The root path ("/" or "") returns the
// whole document.
func (t *Tree) Get(path string) (any, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return t.root, true
	}

	var node any = t.root
	for _, seg := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}

	return node, true
}

// Set stores value at path, creating intermediate tables as needed. It fails
// when a non-table value sits on the way to path.
func (t *Tree) Set(path string, value any) error {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return fmt.Errorf("setting config: empty path")
	}

	node := t.root
	for i, seg := range segments[:len(segments)-1] {
		next, ok := node[seg]
		if !ok {
			child := make(map[string]any)
			node[seg] = child
			node = child
			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("setting config %s: %s is not a table", path, JoinPath(segments[:i+1]))
		}
		node = child
	}

	node[segments[len(segments)-1]] = normalize(value)
	return nil
}

// Delete removes the value at path. Missing paths are ignored.
func (t *Tree) Delete(path string) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return
	}

	parent, ok := t.Get(JoinPath(segments[:len(segments)-1]))
	if !ok {
		return
	}
	if m, ok := parent.(map[string]any); ok {
		delete(m, segments[len(segments)-1])
	}
}

// Map returns a deep copy of the document.
func (t *Tree) Map() map[string]any {
	return deepCopy(t.root).(map[string]any)
}

// Clone returns an independent copy of the tree.
func (t *Tree) Clone() *Tree {
	return &Tree{root: t.Map()}
}

// Paths lists every leaf path in the tree, sorted.
func (t *Tree) Paths() []string {
	var paths []string
	collectPaths(t.root, nil, &paths)
	sort.Strings(paths)
	return paths
}

func collectPaths(node map[string]any, prefix []string, out *[]string) {
	for key, val := range node {
		path := append(append([]string(nil), prefix...), key)
		if child, ok := val.(map[string]any); ok && len(child) > 0 {
			collectPaths(child, path, out)
			continue
		}
		*out = append(*out, JoinPath(path))
	}
}

// SplitPath breaks a slash-delimited path into its segments, ignoring empty
// segments.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// JoinPath renders segments as an absolute slash path.
func JoinPath(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

// CleanPath returns the canonical form of path ("project/build-dir/" becomes
// "/project/build-dir").
func CleanPath(path string) string {
	return JoinPath(SplitPath(path))
}
