// Package diagfmt renders diagnostics, tokens and syntax trees for the
// command line.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shortens long absolute paths to their base name.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the primary line.
	Context  int8
	PathMode PathMode
	// Width caps rendered source lines in terminal cells; 0 is unlimited.
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the bag.
	Max             int
	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}
