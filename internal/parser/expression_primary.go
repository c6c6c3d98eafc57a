package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(identName(tok))), true
	case token.IntLit:
		return p.parseLiteral(ast.ExprLitInt), true
	case token.FloatLit:
		return p.parseLiteral(ast.ExprLitFloat), true
	case token.StringLit:
		return p.parseLiteral(ast.ExprLitString), true
	case token.KwTrue:
		return p.parseLiteral(ast.ExprLitTrue), true
	case token.KwFalse:
		return p.parseLiteral(ast.ExprLitFalse), true
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseBraceLiteral()
	case token.KwFn:
		return p.parseLambda()
	case token.KwMatch:
		return p.parseMatchExpr()
	}
	if tok.Kind.IsTypeCtor() {
		return p.parseTypeCtor()
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

func (p *Parser) parseLiteral(kind ast.ExprLitKind) ast.ExprID {
	tok := p.advance()
	raw := p.intern(tok.Text)
	value := raw
	if kind == ast.ExprLitString {
		value = p.intern(tok.Value)
	}
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, raw, value)
}

// parseParenExpr handles "()", "(e)" and tuples "(a,)", "(a, b)".
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		p.advance()
		return p.arenas.Exprs.NewSeq(p.spanFrom(open.Span), ast.ExprTuple, nil), true
	}
	first, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.RParen)
		p.skipOptional(token.RParen)
		return ast.NoExprID, false
	}
	if p.at(token.RParen) {
		p.advance()
		return p.arenas.Exprs.NewGroup(p.spanFrom(open.Span), first), true
	}
	if !p.at(token.Comma) {
		p.err(diag.SynUnclosedParen, "expected ')' or ',', got "+describe(p.lx.Peek()))
		p.resyncUntil(token.RParen)
		p.skipOptional(token.RParen)
		return ast.NoExprID, false
	}
	p.advance()
	rest, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "')'")
	if !ok {
		return ast.NoExprID, false
	}
	elems := append([]ast.ExprID{first}, rest...)
	return p.arenas.Exprs.NewSeq(p.spanFrom(open.Span), ast.ExprTuple, elems), true
}

func (p *Parser) parseListLiteral() (ast.ExprID, bool) {
	open := p.advance()
	elems, ok := p.parseExprList(token.RBracket, diag.SynUnclosedBracket, "']'")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSeq(p.spanFrom(open.Span), ast.ExprList, elems), true
}

// parseBraceLiteral decides between a set and a dict after the first
// element: "{k: v}" is a dict, "{a, b}" a set and "{}" an empty dict.
func (p *Parser) parseBraceLiteral() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBrace) {
		p.advance()
		return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), nil), true
	}
	first, ok := p.parseExpr()
	if !ok {
		p.resyncUntil(token.RBrace)
		p.skipOptional(token.RBrace)
		return ast.NoExprID, false
	}
	if p.at(token.Colon) {
		entries, ok := p.parseDictEntries(first)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), entries), true
	}
	elems := []ast.ExprID{first}
	if p.at(token.Comma) {
		p.advance()
		rest, ok := p.parseExprList(token.RBrace, diag.SynUnclosedBrace, "'}'")
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, rest...)
	} else if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		p.resyncUntil(token.RBrace)
		p.skipOptional(token.RBrace)
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSeq(p.spanFrom(open.Span), ast.ExprSet, elems), true
}

// parseDictEntries continues a dict literal whose first key is parsed and
// whose ':' is next. It consumes the closing '}'.
func (p *Parser) parseDictEntries(first ast.ExprID) ([]ast.DictEntry, bool) {
	var entries []ast.DictEntry
	key := first
	for {
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' between key and value"); !ok {
			p.resyncUntil(token.RBrace)
			p.skipOptional(token.RBrace)
			return nil, false
		}
		value, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			p.skipOptional(token.RBrace)
			return nil, false
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		key, ok = p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			p.skipOptional(token.RBrace)
			return nil, false
		}
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after dict entries"); !ok {
		p.resyncUntil(token.RBrace)
		p.skipOptional(token.RBrace)
		return nil, false
	}
	return entries, true
}

// parseTypeCtor parses an annotation applied to arguments. Scalar
// constructors take "(x)"; collections take their literal delimiters or
// parentheses: @list[..], @set{..}, @dict{k: v}, @tuple(..).
func (p *Parser) parseTypeCtor() (ast.ExprID, bool) {
	at := p.advance()
	ctor := typeCtorOf(at.Kind)
	open := p.lx.Peek()

	switch {
	case open.Kind == token.LParen:
		p.advance()
		args, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTypeCtor(p.spanFrom(at.Span), ctor, args, nil), true
	case open.Kind == token.LBracket && ctor == ast.TypeCtorList:
		p.advance()
		args, ok := p.parseExprList(token.RBracket, diag.SynUnclosedBracket, "']'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTypeCtor(p.spanFrom(at.Span), ctor, args, nil), true
	case open.Kind == token.LBrace && ctor == ast.TypeCtorSet:
		p.advance()
		args, ok := p.parseExprList(token.RBrace, diag.SynUnclosedBrace, "'}'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTypeCtor(p.spanFrom(at.Span), ctor, args, nil), true
	case open.Kind == token.LBrace && ctor == ast.TypeCtorDict:
		p.advance()
		if p.at(token.RBrace) {
			p.advance()
			return p.arenas.Exprs.NewTypeCtor(p.spanFrom(at.Span), ctor, nil, nil), true
		}
		key, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			p.skipOptional(token.RBrace)
			return ast.NoExprID, false
		}
		entries, ok := p.parseDictEntries(key)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTypeCtor(p.spanFrom(at.Span), ctor, nil, entries), true
	}
	p.err(diag.SynUnexpectedToken, "expected "+ctorOpeners(ctor)+" after '"+at.Text+"', got "+describe(open))
	return ast.NoExprID, false
}

func typeCtorOf(k token.Kind) ast.TypeCtorKind {
	switch k {
	case token.AtInt:
		return ast.TypeCtorInt
	case token.AtFloat:
		return ast.TypeCtorFloat
	case token.AtStr:
		return ast.TypeCtorStr
	case token.AtBool:
		return ast.TypeCtorBool
	case token.AtList:
		return ast.TypeCtorList
	case token.AtTuple:
		return ast.TypeCtorTuple
	case token.AtSet:
		return ast.TypeCtorSet
	case token.AtDict:
		return ast.TypeCtorDict
	}
	panic("parser: not a type constructor: " + k.String())
}

func ctorOpeners(k ast.TypeCtorKind) string {
	switch k {
	case ast.TypeCtorList:
		return "'[' or '('"
	case ast.TypeCtorSet, ast.TypeCtorDict:
		return "'{' or '('"
	}
	return "'('"
}

// parseLambda parses "fn(a, b) => expr".
func (p *Parser) parseLambda() (ast.ExprID, bool) {
	fnTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'fn' in lambda"); !ok {
		return ast.NoExprID, false
	}
	params, ok := p.parseParams(false)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.FatArrow, diag.SynExpectFatArrow, "expected '=>' after lambda parameters"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := fnTok.Span.Cover(p.arenas.Exprs.Get(body).Span)
	return p.arenas.Exprs.NewLambda(sp, params, body), true
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}
