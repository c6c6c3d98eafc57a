package sema

import (
	"fmt"

	"gul/internal/diag"
	"gul/internal/source"
)

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(tc.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

// reportWithNote attaches a secondary location, e.g. where a binding was
// declared or moved.
func (tc *typeChecker) reportWithNote(code diag.Code, span, noteSpan source.Span, note, format string, args ...any) {
	b := diag.ReportError(tc.reporter, code, span, fmt.Sprintf(format, args...))
	if noteSpan != (source.Span{}) {
		b.WithNote(noteSpan, note)
	}
	b.Emit()
}
