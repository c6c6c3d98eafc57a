package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

// parseStmtListItem parses one statement of a statement list. Unexpected
// indentation is reported once and the indented lines are parsed as if
// they belonged to the current block.
func (p *Parser) parseStmtListItem() []ast.StmtID {
	switch p.lx.Peek().Kind {
	case token.Newline, token.Semicolon:
		p.advance()
		return nil
	case token.Indent:
		p.err(diag.SynUnexpectedToken, "unexpected indentation")
		p.advance()
		var out []ast.StmtID
		for !p.atOr(token.Dedent, token.EOF) {
			out = append(out, p.parseStmtListItem()...)
		}
		p.skipOptional(token.Dedent)
		return out
	}
	return []ast.StmtID{p.parseStmt()}
}

// parseStmt dispatches on the leading token. It never returns NoStmtID: a
// failed statement becomes a StmtBad and the parser skips to the next
// statement boundary.
func (p *Parser) parseStmt() ast.StmtID {
	start := p.lx.Peek().Span
	id, ok := p.parseStmtInner()
	if ok {
		return id
	}
	p.resyncStmt()
	return p.arenas.Stmts.NewBad(p.spanFrom(start))
}

func (p *Parser) parseStmtInner() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwLet, token.KwVar:
		return p.parseLetStmt()
	case token.KwFn:
		return p.parseFnStmt(false)
	case token.KwAsync:
		p.advance()
		if !p.at(token.KwFn) {
			p.err(diag.SynUnexpectedToken, "expected 'fn' after 'async', got "+describe(p.lx.Peek()))
			return ast.NoStmtID, false
		}
		return p.parseFnStmt(true)
	case token.KwStruct:
		return p.parseStructStmt()
	case token.KwEnum:
		return p.parseEnumStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwLoop:
		return p.parseLoopStmt()
	case token.KwMatch:
		return p.parseMatchStmt()
	case token.KwBreak:
		p.advance()
		return p.arenas.Stmts.NewBreak(tok.Span), p.endStmt()
	case token.KwContinue:
		p.advance()
		return p.arenas.Stmts.NewContinue(tok.Span), p.endStmt()
	case token.KwPass:
		p.advance()
		return p.arenas.Stmts.NewPass(tok.Span), p.endStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwTry:
		return p.parseTryStmt()
	case token.KwMn:
		return p.parseEntryStmt()
	case token.AtImp:
		return p.parseImportStmt()
	case token.KwElif, token.KwElse:
		p.err(diag.SynDanglingClause, "'"+tok.Text+"' without matching 'if'")
		return ast.NoStmtID, false
	case token.KwCatch, token.KwFinally:
		p.err(diag.SynDanglingClause, "'"+tok.Text+"' without matching 'try'")
		return ast.NoStmtID, false
	}
	if tok.Kind.IsForeign() {
		return p.parseForeignStmt()
	}
	return p.parseSimpleStmt()
}

// parseSimpleStmt parses an expression statement or an assignment.
func (p *Parser) parseSimpleStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if op, isAssign := assignOp(p.lx.Peek().Kind); isAssign {
		opTok := p.advance()
		if !p.isAssignable(expr) {
			p.errAt(diag.SynInvalidAssignTarget, p.exprSpan(expr), "cannot assign to this expression")
			return ast.NoStmtID, false
		}
		if p.atStmtEnd() {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Text+"'")
			return ast.NoStmtID, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		id := p.arenas.Stmts.NewAssign(p.spanFrom(start), op, expr, value)
		return id, p.endStmt()
	}
	id := p.arenas.Stmts.NewExpr(p.spanFrom(start), expr)
	return id, p.endStmt()
}

// isAssignable accepts names, members and index expressions.
func (p *Parser) isAssignable(id ast.ExprID) bool {
	e := p.arenas.Exprs.Get(p.arenas.Exprs.Unparen(id))
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	}
	return false
}

// parseBlock parses the body after a block opener's ':'. The body is
// either one statement on the same line or NEWLINE INDENT ... DEDENT.
func (p *Parser) parseBlock(what string) ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+what); !ok {
		return nil, false
	}
	if !p.at(token.Newline) {
		if p.atOr(token.Dedent, token.EOF) {
			p.err(diag.SynExpectBlock, "expected a body for "+what)
			return []ast.StmtID{p.arenas.Stmts.NewBad(p.getDiagnosticSpan())}, true
		}
		return []ast.StmtID{p.parseStmt()}, true
	}
	return p.parseIndentedBlock(what), true
}

// parseIndentedBlock consumes NEWLINE INDENT stmts DEDENT. A missing
// indent is reported and yields a block holding one StmtBad so the
// enclosing construct is never empty.
func (p *Parser) parseIndentedBlock(what string) []ast.StmtID {
	p.advance() // Newline
	if !p.at(token.Indent) {
		sp := p.getDiagnosticSpan()
		p.errAt(diag.SynExpectBlock, sp, "expected an indented block for "+what)
		return []ast.StmtID{p.arenas.Stmts.NewBad(sp)}
	}
	p.advance()
	if !p.enter() {
		p.resyncBlock()
		return []ast.StmtID{p.arenas.Stmts.NewBad(p.lastSpan)}
	}
	defer p.leave()

	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		body = append(body, p.parseStmtListItem()...)
	}
	p.skipOptional(token.Dedent)
	if len(body) == 0 {
		body = append(body, p.arenas.Stmts.NewPass(p.lastSpan))
	}
	return body
}

// resyncBlock skips to the Dedent closing the current block and eats it.
func (p *Parser) resyncBlock() {
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
		}
	}
}

func (p *Parser) parseMatchStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	m, ok := p.parseMatchExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewMatch(p.spanFrom(start), m), true
}

// parseEntryStmt parses the "mn:" program entry block.
func (p *Parser) parseEntryStmt() (ast.StmtID, bool) {
	start := p.advance().Span
	body, ok := p.parseBlock("'mn'")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewEntry(p.spanFrom(start), body), true
}
