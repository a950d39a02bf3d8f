package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"go.dot.industries/cccpt/internal/config"
)

const (
	exportScript  = "export-packages.py"
	recipePattern = "**/conanfile.py"
	conanHomeVar  = "CONAN_USER_HOME"
)

// RecipeOptions are the inputs of InstallRecipes. Without URLs the
// /recipes/remotes list is used. Home, when set, becomes CONAN_USER_HOME
// for the exports.
type RecipeOptions struct {
	URLs        []string
	UserChannel string
	Home        string
}

// InstallRecipes exports the Conan recipes of every repository in
// opts.URLs into the local cache. A repository that ships an
// export-packages.py script is exported by running it; otherwise every
// conanfile.py in it is exported to the user/channel. The result sums the
// failures of all repositories.
func (o *Orchestrator) InstallRecipes(ctx context.Context, opts RecipeOptions) Result {
	defer o.scope.Enter()()

	urls, err := o.stringsOption(opts.URLs, config.PathRemotes)
	if err != nil {
		o.status.Error("Invalid recipe remotes: %v", err)
		return Fail(PhaseRecipes, 1)
	}
	if len(urls) == 0 {
		o.status.Warn("No recipe repositories given or configured.")
		return Result{}
	}

	if opts.Home != "" {
		prev, had := o.env.Lookup(conanHomeVar)
		o.env.Set(conanHomeVar, o.abs(opts.Home))
		defer func() {
			if had {
				o.env.Set(conanHomeVar, prev)
			} else {
				o.env.Unset(conanHomeVar)
			}
		}()
	}

	steps := make([]Step, 0, len(urls))
	for _, url := range urls {
		steps = append(steps, o.exportRecipes(url, opts.UserChannel))
	}

	res := SumCodes(steps...)(ctx)
	if res.OK() {
		o.status.Success("Exported recipes from %d repositories.", len(urls))
	}
	return res
}

func (o *Orchestrator) exportRecipes(url, userChannel string) Step {
	return func(ctx context.Context) Result {
		tmp, err := os.MkdirTemp("", "cccpt-recipes-")
		if err != nil {
			o.status.Error("Could not create a temporary directory: %v", err)
			return Fail(PhaseRecipes, 1)
		}
		defer removeAll(tmp)

		dir := filepath.Join(tmp, "recipes")
		o.status.Info("Fetching recipes from %s", url)
		if code, err := o.git.Clone(ctx, url, dir); err != nil || code != 0 {
			o.status.Error("Could not clone %s: %v", url, gitFailure(code, err))
			return Fail(PhaseRecipes, code)
		}

		if isRegular(filepath.Join(dir, exportScript)) {
			if code := o.run(ctx, dir, o.tool("python"), exportScript); code != 0 {
				o.status.Error("%s in %s failed with exit code %d.", exportScript, url, code)
				return Fail(PhaseRecipes, code)
			}
			return Result{}
		}

		recipes, err := doublestar.Glob(os.DirFS(dir), recipePattern, doublestar.WithFilesOnly())
		if err != nil {
			o.status.Error("Could not list recipes in %s: %v", url, err)
			return Fail(PhaseRecipes, 1)
		}
		if len(recipes) == 0 {
			o.status.Warn("No recipes found in %s.", url)
			return Result{}
		}
		if userChannel == "" {
			o.status.Error("Exporting recipes from %s needs a user/channel.", url)
			return Fail(PhaseRecipes, 1)
		}

		steps := make([]Step, 0, len(recipes))
		for _, recipe := range recipes {
			path := filepath.Join(dir, filepath.FromSlash(recipe))
			steps = append(steps, func(ctx context.Context) Result {
				argv := []string{o.tool("conan"), "export", path, userChannel}
				if code := o.run(ctx, filepath.Dir(path), argv...); code != 0 {
					o.status.Error("Exporting %s failed with exit code %d.", recipe, code)
					return Fail(PhaseRecipes, code)
				}
				return Result{}
			})
		}
		return SumCodes(steps...)(ctx)
	}
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
