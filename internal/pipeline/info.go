package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
	"go.dot.industries/cccpt/internal/sources"
)

// ProjectInfo describes the project for display.
type ProjectInfo struct {
	Name            string
	Root            string
	DebugBuildDir   string
	ReleaseBuildDir string
	// Note explains why Name fell back to the root directory name.
	Note string
}

// Info resolves the project name, root and build directories.
func (o *Orchestrator) Info(ctx context.Context) (ProjectInfo, error) {
	root, err := o.Root(ctx)
	if err != nil {
		return ProjectInfo{}, err
	}

	info := ProjectInfo{
		Name:            filepath.Base(root),
		Root:            root,
		DebugBuildDir:   o.BuildDir(root, project.Debug),
		ReleaseBuildDir: o.BuildDir(root, project.Release),
	}

	name, err := project.Name(root)
	switch {
	case err != nil:
		info.Note = fmt.Sprintf("no readable %s", project.BuildDescriptor)
	case name.Declarations == 0:
		info.Note = fmt.Sprintf("%s declares no project", project.BuildDescriptor)
	case name.Declarations > 1:
		info.Note = fmt.Sprintf("%s declares %d projects", project.BuildDescriptor, name.Declarations)
	default:
		info.Name = name.Name
	}

	return info, nil
}

// Sources lists the source files under the project root, relative to it.
func (o *Orchestrator) Sources(ctx context.Context) ([]string, error) {
	root, err := o.Root(ctx)
	if err != nil {
		return nil, err
	}

	var f sources.Filter
	if f.Patterns, err = o.scope.Strings(config.PathSourcePatterns, o.env.Get); err != nil {
		return nil, fmt.Errorf("source patterns: %w", err)
	}
	if f.Ignore, err = o.scope.Strings(config.PathSourceIgnore, o.env.Get); err != nil {
		return nil, fmt.Errorf("source ignore patterns: %w", err)
	}
	if f.Include, err = o.scope.Strings(config.PathSourceInclude, o.env.Get); err != nil {
		return nil, fmt.Errorf("source include patterns: %w", err)
	}

	return sources.List(root, f)
}
