// Package version holds build metadata for the gul CLI.
// The variables can be overridden at build time via -ldflags.
package version

import "github.com/fatih/color"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor and Patch make up the plain semantic version.
	Major = "0"
	Minor = "1"
	Patch = "0"
	// Suffix is appended after the patch number, e.g. "-dev".
	Suffix = "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the version without color codes.
func Plain() string {
	return Major + "." + Minor + "." + Patch + Suffix
}

// Colored returns the version with each component highlighted. Colors are
// dropped when the process is not attached to a terminal.
func Colored() string {
	return majorColor.Sprint(Major) + "." + minorColor.Sprint(Minor) + "." + patchColor.Sprint(Patch) + Suffix
}
