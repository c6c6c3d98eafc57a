package lexer

import (
	"gul/internal/diag"
	"gul/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing continues either way.
	Reporter diag.Reporter
	// TabWidth is the indentation width of a tab; 0 means 4.
	TabWidth uint32
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

func (lx *Lexer) tabWidth() uint32 {
	if lx.opts.TabWidth == 0 {
		return 4
	}
	return lx.opts.TabWidth
}
