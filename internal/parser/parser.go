package parser

import (
	"slices"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/source"
	"gul/internal/token"
)

// maxNesting bounds expression and block recursion. Deeper input is
// reported instead of exhausting the stack.
const maxNesting = 200

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state of one file parse.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token
	lastKind token.Kind
	nesting  int
	tooDeep  bool
}

// ParseFile parses one file from an already constructed lexer. Syntax
// errors are reported and recovered from; the returned file always exists.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseTopLevel()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

func (p *Parser) parseTopLevel() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.at(token.Dedent) {
			p.advance()
			continue
		}
		for _, id := range p.parseStmtListItem() {
			p.arenas.PushStmt(p.file, id)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// identName returns the normalized spelling of an identifier token.
func identName(tok token.Token) string {
	if tok.Value != "" {
		return tok.Value
	}
	return tok.Text
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern(identName(tok)), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.lx.Peek()))
	return source.NoStringID, p.getDiagnosticSpan(), false
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.StringsInterner.Intern(s)
}

// describe renders a token for messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indentation"
	case token.Dedent:
		return "end of block"
	case token.ForeignBody:
		return "foreign block"
	}
	return "'" + tok.Text + "'"
}
