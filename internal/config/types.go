package config

// Unlimited disables the ancestor cap in Discover and Load.
const Unlimited = -1

// DefaultFileName is the config fragment name looked up when no --config flag
// is given.
const DefaultFileName = ".project.yml"

// DiscoveredFile is one config fragment found during discovery. Depth is the
// number of directory levels between the start directory and the directory
// holding the file (0 is the start directory itself).
type DiscoveredFile struct {
	Path  string
	Depth int
}

// Recognized tree paths.
const (
	PathEnvironment      = "/environment"
	PathEnvironmentFiles = "/environment-files"
	PathTools            = "/tools"
	PathRoot             = "/project/root"
	PathBuildDir         = "/project/build-dir"
	PathVerbose          = "/project/verbose"

	PathGenerator      = "/project/configure/generator"
	PathExtraConfigure = "/project/configure/extra-cmake-configure-options"
	PathExtraConan     = "/project/configure/extra-conan-install-options"
	PathJobs           = "/project/build/jobs"
	PathExtraBuild     = "/project/build/extra-cmake-build-options"
	PathTestPatterns   = "/project/test/patterns"
	PathTestPassArgs   = "/project/test/pass-args"
	PathInstallDir     = "/project/install/build-dir"

	PathVersionFile = "/release/version-file"
	PathHooksDir    = "/release/hooks-dir"
	PathRemotes     = "/recipes/remotes"

	PathSourcePatterns = "/sources/patterns"
	PathSourceIgnore   = "/sources/ignore"
	PathSourceInclude  = "/sources/include"
)

// ToolPath returns the tree path holding the location override for a tool.
func ToolPath(name string) string {
	return PathTools + "/" + name
}
