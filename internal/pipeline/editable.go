package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"go.dot.industries/cccpt/internal/config"
	"go.dot.industries/cccpt/internal/project"
)

const (
	editableSuffix     = "-conan_editable_package"
	editableInstallDir = "INSTALL"
	recipeFile         = "conanfile.py"
)

// EditableOptions are the inputs of MakeEditable. RecipeFile, when set, is
// the conanfile.py copied next to the installed package.
type EditableOptions struct {
	Reference  string
	RecipeFile string
}

// MakeEditable installs a release build of the project into its own build
// directory and registers the install tree as a Conan editable package
// for opts.Reference.
func (o *Orchestrator) MakeEditable(ctx context.Context, opts EditableOptions) Result {
	defer o.scope.Enter()()

	root := o.rootOrWorkDir(ctx)
	buildDir := project.BuildDir(root, project.Release, o.platform) + editableSuffix
	installDir := filepath.Join(buildDir, editableInstallDir)

	recipe, res := o.editableRecipe(ctx, root, buildDir, opts)
	if !res.OK() {
		return res
	}

	if err := o.scope.Set(config.PathBuildDir, buildDir); err != nil {
		o.status.Error("Could not use build directory %s: %v", buildDir, err)
		return Fail(PhaseEditable, 1)
	}
	log.Debug().Str("build_dir", buildDir).Str("reference", opts.Reference).Msg("editable package")

	if res := o.Install(ctx, InstallOptions{Dir: installDir}); !res.OK() {
		return res
	}

	if err := os.MkdirAll(installDir, 0755); err != nil {
		o.status.Error("Could not create %s: %v", installDir, err)
		return Fail(PhaseEditable, 1)
	}
	if err := os.WriteFile(filepath.Join(installDir, recipeFile), []byte(recipe), 0644); err != nil {
		o.status.Error("Could not write the package recipe: %v", err)
		return Fail(PhaseEditable, 1)
	}

	argv := []string{o.tool("conan"), "editable", "add", installDir, opts.Reference}
	if code := o.run(ctx, root, argv...); code != 0 {
		o.status.Error("conan editable add failed with exit code %d.", code)
		return Fail(PhaseEditable, code)
	}

	o.status.Success("%s is now an editable package in %s.", opts.Reference, installDir)
	return Result{}
}

// editableRecipe returns the recipe text: opts.RecipeFile, else a
// conanfile.py in the build directory or root, else what "conan get"
// prints for the reference.
func (o *Orchestrator) editableRecipe(ctx context.Context, root, buildDir string, opts EditableOptions) (string, Result) {
	if opts.RecipeFile != "" {
		path := o.abs(opts.RecipeFile)
		data, err := os.ReadFile(path)
		if err != nil {
			o.status.Error("Conan recipe file %s is not readable: %v", path, err)
			return "", Fail(PhasePrecondition, 1)
		}
		return string(data), Result{}
	}

	for _, dir := range []string{buildDir, root} {
		if data, err := os.ReadFile(filepath.Join(dir, recipeFile)); err == nil {
			return string(data), Result{}
		}
	}

	out, code, err := o.capture(ctx, root, o.tool("conan"), "get", opts.Reference)
	if err == nil && code == 0 && strings.TrimSpace(out) != "" {
		return out, Result{}
	}
	log.Debug().Err(err).Int("code", code).Msg("conan get")

	o.status.Error("Could not find a Conan recipe for %s.", opts.Reference)
	o.status.Detail("Pass one with --conan-recipe-file or add %s to the project root.", recipeFile)
	return "", Fail(PhasePrecondition, 1)
}
