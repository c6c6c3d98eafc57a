package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

// parseMatchExpr parses
//
//	match scrutinee:
//	    pattern [if guard] => expr
//	    pattern =>
//	        block
func (p *Parser) parseMatchExpr() (ast.ExprID, bool) {
	matchTok := p.advance()
	scrutinee, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after match subject"); !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Newline, diag.SynExpectBlock, "expected match arms on the following lines"); !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Indent, diag.SynExpectBlock, "expected indented match arms"); !ok {
		return ast.NoExprID, false
	}
	if !p.enter() {
		return ast.NoExprID, false
	}
	defer p.leave()

	var arms []ast.MatchArm
	for !p.atOr(token.Dedent, token.EOF) {
		if p.atOr(token.Newline, token.Semicolon) {
			p.advance()
			continue
		}
		arm, ok := p.parseMatchArm()
		if !ok {
			p.resyncStmt()
			continue
		}
		arms = append(arms, arm)
	}
	p.skipOptional(token.Dedent)
	if len(arms) == 0 {
		p.errAt(diag.SynExpectBlock, matchTok.Span, "match has no arms")
	}
	return p.arenas.Exprs.NewMatch(p.spanFrom(matchTok.Span), scrutinee, arms), true
}

func (p *Parser) parseMatchArm() (ast.MatchArm, bool) {
	start := p.lx.Peek().Span
	pat, ok := p.parsePattern()
	if !ok {
		return ast.MatchArm{}, false
	}
	arm := ast.MatchArm{Pattern: pat}
	if p.at(token.KwIf) {
		p.advance()
		arm.Guard, ok = p.parseExpr()
		if !ok {
			return ast.MatchArm{}, false
		}
	}
	if _, ok := p.expect(token.FatArrow, diag.SynExpectFatArrow, "expected '=>' after match pattern"); !ok {
		return ast.MatchArm{}, false
	}

	switch p.lx.Peek().Kind {
	case token.Newline:
		arm.IsBlock = true
		arm.Block = p.parseIndentedBlock("match arm")
	case token.KwReturn, token.KwBreak, token.KwContinue, token.KwPass:
		arm.IsBlock = true
		arm.Block = []ast.StmtID{p.parseStmt()}
	default:
		arm.Value, ok = p.parseExpr()
		if !ok {
			return ast.MatchArm{}, false
		}
		p.endStmt()
	}
	arm.Span = p.spanFrom(start)
	return arm, true
}

// parsePattern accepts "_", a binding name, Enum.Variant and literals
// (negative numbers included).
func (p *Parser) parsePattern() (ast.PatternID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := identName(tok)
		if name == "_" {
			return p.arenas.Patterns.New(ast.Pattern{Kind: ast.PatWildcard, Span: tok.Span}), true
		}
		if !p.at(token.Dot) {
			return p.arenas.Patterns.New(ast.Pattern{Kind: ast.PatBind, Span: tok.Span, Name: p.intern(name)}), true
		}
		p.advance()
		variant, vspan, ok := p.parseIdent("variant name after '.'")
		if !ok {
			return ast.NoPatternID, false
		}
		return p.arenas.Patterns.New(ast.Pattern{
			Kind: ast.PatVariant,
			Span: tok.Span.Cover(vspan),
			Enum: p.intern(name),
			Name: variant,
		}), true
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse, token.Minus:
		lit, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoPatternID, false
		}
		return p.arenas.Patterns.New(ast.Pattern{Kind: ast.PatLiteral, Span: p.exprSpan(lit), Literal: lit}), true
	}
	p.err(diag.SynBadPattern, "expected a pattern (literal, name, '_' or Enum.Variant), got "+describe(tok))
	return ast.NoPatternID, false
}
