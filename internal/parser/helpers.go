package parser

import (
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

// advance consumes the next token and records its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid && tok.Kind != token.Dedent {
		p.lastSpan = tok.Span
	}
	p.lastKind = tok.Kind
	return tok
}

// getDiagnosticSpan points at the next token, or just past the previous one
// when the next token is synthetic and zero-width.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Span.Empty() || peek.Kind == token.Newline {
		if p.lastSpan.End > 0 {
			return p.lastSpan.ZeroideToEnd()
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg+", got "+describe(p.lx.Peek()))
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// err reports an error at the current position.
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}

// atStmtEnd reports tokens that end a simple statement.
func (p *Parser) atStmtEnd() bool {
	return p.atOr(token.Newline, token.Semicolon, token.Dedent, token.EOF)
}

// endStmt finishes a simple statement. A statement that closed with a
// block (its Dedent already consumed) needs nothing more. Trailing junk is
// reported and skipped here; the statement itself is kept, so the result
// is always true.
func (p *Parser) endStmt() bool {
	switch p.lx.Peek().Kind {
	case token.Newline, token.Semicolon:
		p.advance()
		return true
	case token.Dedent, token.EOF:
		return true
	}
	if p.lastKind == token.Dedent {
		return true
	}
	p.err(diag.SynExpectNewline, "expected end of statement, got "+describe(p.lx.Peek()))
	p.resyncStmt()
	return true
}

// resyncStmt skips to the next statement boundary: the end of the current
// line at this nesting level, a block that belongs to the broken line, or
// the Dedent that closes the enclosing block (left unconsumed).
func (p *Parser) resyncStmt() {
	depth := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Newline:
			p.advance()
			if depth == 0 {
				if !p.at(token.Indent) {
					return
				}
				// the broken line opened a block; skip it as well
			}
		case token.Indent:
			depth++
			p.advance()
		case token.Dedent:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
			if depth == 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

// resyncUntil skips tokens until one of kinds, a line end or EOF. Used
// inside bracketed lists, where line ends do not occur.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.atOr(kinds...) && !p.atOr(token.EOF, token.Newline, token.Dedent) {
		p.advance()
	}
}

// enter guards recursion depth; callers must call leave when enter succeeds.
func (p *Parser) enter() bool {
	if p.nesting >= maxNesting {
		if !p.tooDeep {
			p.tooDeep = true
			p.err(diag.SynNestingTooDeep, "nesting too deep")
		}
		return false
	}
	p.nesting++
	return true
}

func (p *Parser) leave() {
	p.nesting--
}
