package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.lx.Peek()
	var data ast.StmtIfData
	for i := 0; i == 0 || p.at(token.KwElif); i++ {
		kw := p.advance() // if / elif
		cond, ok := p.parseCondition(kw.Text)
		if !ok {
			return ast.NoStmtID, false
		}
		body, ok := p.parseBlock("'" + kw.Text + "' condition")
		if !ok {
			return ast.NoStmtID, false
		}
		data.Branches = append(data.Branches, ast.IfBranch{Span: p.spanFrom(kw.Span), Cond: cond, Body: body})
	}
	if p.at(token.KwElse) {
		p.advance()
		body, ok := p.parseBlock("'else'")
		if !ok {
			return ast.NoStmtID, false
		}
		data.Else, data.HasElse = body, true
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(ifTok.Span), data), true
}

// parseCondition parses the expression after if/elif/while.
func (p *Parser) parseCondition(after string) (ast.ExprID, bool) {
	if p.at(token.Colon) {
		p.err(diag.SynExpectExpression, "expected condition after '"+after+"'")
		return ast.NoExprID, false
	}
	return p.parseExpr()
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseCondition("while")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock("'while' condition")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.spanFrom(kw.Span), cond, body), true
}

// parseForStmt parses "for name in iterable:".
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("loop variable after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' after loop variable"); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock("'for' header")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(kw.Span), ast.StmtForData{
		Var:     name,
		VarSpan: nameSpan,
		Iter:    iter,
		Body:    body,
	}), true
}

func (p *Parser) parseLoopStmt() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock("'loop'")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(p.spanFrom(kw.Span), body), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.atStmtEnd() {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	id := p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), value)
	return id, p.endStmt()
}

// parseTryStmt parses try/catch/finally. At least one catch or a finally
// must follow the try block.
func (p *Parser) parseTryStmt() (ast.StmtID, bool) {
	kw := p.advance()
	body, ok := p.parseBlock("'try'")
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtTryData{Body: body}

	for p.at(token.KwCatch) {
		catchTok := p.advance()
		clause := ast.CatchClause{}
		if p.at(token.Ident) {
			clause.Name, clause.NameSpan, _ = p.parseIdent("error name")
		}
		if clause.Body, ok = p.parseBlock("'catch'"); !ok {
			return ast.NoStmtID, false
		}
		clause.Span = p.spanFrom(catchTok.Span)
		data.Catches = append(data.Catches, clause)
	}
	if p.at(token.KwFinally) {
		p.advance()
		if data.Finally, ok = p.parseBlock("'finally'"); !ok {
			return ast.NoStmtID, false
		}
		data.HasFinally = true
	}
	if len(data.Catches) == 0 && !data.HasFinally {
		p.errAt(diag.SynTryWithoutHandler, kw.Span, "'try' without 'catch' or 'finally'")
		return p.arenas.Stmts.NewBad(p.spanFrom(kw.Span)), true
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(kw.Span), data), true
}
