//go:build !windows

package envsynth

// DescriptorPattern matches the dependency manager's environment descriptor
// files inside a build directory.
const DescriptorPattern = "environment*.sh.env"

// ActivateScript is the activation script sourced after descriptors are
// applied.
const ActivateScript = "activate.sh"
