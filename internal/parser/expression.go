package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

// parseExpr is the entry point for expressions. Assignment is left to the
// statement parser, so climbing starts at logical-or.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr is precedence climbing: parse an operand, then keep
// folding operators whose precedence is at least minPrec. The right operand
// is parsed at prec+1 for left-associative operators and at prec for
// right-associative ones.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	if !p.enter() {
		return ast.NoExprID, false
	}
	defer p.leave()

	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		if p.lastKind == token.Dedent {
			// a block-bodied operand (match) ended the line
			break
		}
		tok := p.lx.Peek()
		prec, isRightAssoc := getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		if p.atStmtEnd() {
			p.err(diag.SynExpectExpression, "expected expression after '"+opTok.Text+"'")
			return ast.NoExprID, false
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		leftSpan := p.arenas.Exprs.Get(left).Span
		rightSpan := p.arenas.Exprs.Get(right).Span
		left = p.arenas.Exprs.NewBinary(leftSpan.Cover(rightSpan), tokenKindToBinaryOp(opTok.Kind), left, right)
	}

	return left, true
}

// parseUnaryExpr collects prefix operators and applies them right to left
// around a postfix expression.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op    ast.ExprUnaryOp
		await bool
		span  source.Span
	}
	var prefixes []prefixOp

	for {
		tok := p.lx.Peek()
		if tok.Kind == token.KwAwait {
			p.advance()
			prefixes = append(prefixes, prefixOp{await: true, span: tok.Span})
			continue
		}
		op, ok := getUnaryOperator(tok.Kind)
		if !ok {
			break
		}
		p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: tok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		sp := prefixes[i].span.Cover(p.arenas.Exprs.Get(expr).Span)
		if prefixes[i].await {
			expr = p.arenas.Exprs.NewAwait(sp, expr)
			continue
		}
		expr = p.arenas.Exprs.NewUnary(sp, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr chains calls, indexing and member access in any order.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		if p.lastKind == token.Dedent {
			return expr, true
		}
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallSuffix(expr)
		case token.LBracket:
			expr, ok = p.parseIndexSuffix(expr)
		case token.Dot:
			expr, ok = p.parseMemberSuffix(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallSuffix(callee ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('
	args, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "')'")
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(callee).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewCall(sp, callee, args), true
}

func (p *Parser) parseIndexSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '['
	index, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.RBracket)
		p.skipOptional(token.RBracket)
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index"); !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(target).Span.Cover(p.lastSpan)
	return p.arenas.Exprs.NewIndex(sp, target, index), true
}

// parseMemberSuffix handles "x.name" and tuple access "t.0".
func (p *Parser) parseMemberSuffix(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '.'
	tok := p.lx.Peek()
	var name string
	switch tok.Kind {
	case token.Ident:
		name = identName(tok)
	case token.IntLit:
		name = tok.Text
	default:
		if tok.IsKeyword() {
			// fields named like keywords are still reachable after '.'
			name = tok.Text
			break
		}
		p.err(diag.SynExpectIdentifier, "expected member name after '.', got "+describe(tok))
		return ast.NoExprID, false
	}
	p.advance()
	sp := p.arenas.Exprs.Get(target).Span.Cover(tok.Span)
	return p.arenas.Exprs.NewMember(sp, target, p.intern(name), tok.Span), true
}

// parseExprList parses "a, b, c" up to the closing token, which it
// consumes. A trailing comma is allowed.
func (p *Parser) parseExprList(closer token.Kind, code diag.Code, closerText string) ([]ast.ExprID, bool) {
	var items []ast.ExprID
	for !p.at(closer) {
		if p.at(token.EOF) || p.at(token.Newline) {
			p.err(code, "expected "+closerText+", got "+describe(p.lx.Peek()))
			return nil, false
		}
		item, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(closer)
			p.skipOptional(closer)
			return nil, false
		}
		items = append(items, item)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(closer, code, "expected "+closerText); !ok {
		p.resyncUntil(closer)
		p.skipOptional(closer)
		return nil, false
	}
	return items, true
}

func (p *Parser) skipOptional(k token.Kind) {
	if p.at(k) {
		p.advance()
	}
}
