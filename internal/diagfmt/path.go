package diagfmt

import (
	"gul/internal/diag"
	"gul/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// fileOf returns the file a span points into, or nil when fs does not
// hold it.
func fileOf(fs *source.FileSet, span source.Span) *source.File {
	if fs == nil || int(span.File) >= fs.Len() {
		return nil
	}
	return fs.Get(span.File)
}

// locatable reports whether a diagnostic points at source text. I/O and
// timing diagnostics carry an empty span.
func locatable(d *diag.Diagnostic, fs *source.FileSet) bool {
	return locatableAt(d.Code, d.Primary, fs)
}

func locatableAt(code diag.Code, span source.Span, fs *source.FileSet) bool {
	if fileOf(fs, span) == nil {
		return false
	}
	switch {
	case code >= diag.IOLoadFileError && code < diag.ProjInfo:
		return false
	case code >= diag.ObsInfo && code < diag.ObsInfo+1000:
		return false
	}
	return true
}
