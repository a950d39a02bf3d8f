//go:build windows

package envsynth

// DescriptorPattern matches the dependency manager's environment descriptor
// files inside a build directory.
const DescriptorPattern = "environment*.ps1.env"

// ActivateScript is empty on Windows: activate.bat cannot be sourced by the
// embedded POSIX shell.
const ActivateScript = ""
