package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

func (p *Parser) parseFnStmt(async bool) (ast.StmtID, bool) {
	return p.parseFn(async, false)
}

// parseFn parses "fn name(params) [-> T]:" and its body. The 'async'
// keyword, when present, was consumed by the caller. Methods may take a
// leading self parameter.
func (p *Parser) parseFn(async, method bool) (ast.StmtID, bool) {
	start := p.lastSpan
	fnTok := p.advance()
	if !async {
		start = fnTok.Span
	}
	data := ast.StmtFnData{Async: async}

	name, nameSpan, ok := p.parseIdent("function name after 'fn'")
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoStmtID, false
	}
	if data.Params, ok = p.parseParams(method); !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.Arrow) {
		p.advance()
		if data.Return, ok = p.parseTypeExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if data.Body, ok = p.parseBlock("function '" + p.arenas.Name(name) + "'"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFn(p.spanFrom(start), data), true
}

func ownershipOf(k token.Kind) (ast.Ownership, bool) {
	switch k {
	case token.KwBorrow:
		return ast.OwnBorrow, true
	case token.KwRef:
		return ast.OwnRef, true
	case token.KwMove, token.KwOwn:
		return ast.OwnMove, true
	case token.KwKept:
		return ast.OwnKept, true
	}
	return ast.OwnNone, false
}

// parseParams parses a parameter list after '(' through ')'. A parameter
// is "[mode] name [: [mode] T]"; the mode may be written before the name
// or before the type, not both.
func (p *Parser) parseParams(allowSelf bool) ([]ast.Param, bool) {
	var params []ast.Param
	seen := make(map[source.StringID]bool)
	for !p.at(token.RParen) {
		param, ok := p.parseParam(allowSelf && len(params) == 0)
		if !ok {
			p.resyncUntil(token.RParen)
			p.skipOptional(token.RParen)
			return nil, false
		}
		if seen[param.Name] {
			p.errAt(diag.SynDuplicateEntry, param.Span, "duplicate parameter '"+p.arenas.Name(param.Name)+"'")
		}
		seen[param.Name] = true
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		p.resyncUntil(token.RParen)
		p.skipOptional(token.RParen)
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam(selfAllowed bool) (ast.Param, bool) {
	start := p.lx.Peek().Span
	var param ast.Param
	if mode, ok := ownershipOf(p.lx.Peek().Kind); ok {
		p.advance()
		param.Mode = mode
	}
	name, nameSpan, ok := p.parseIdent("parameter name")
	if !ok {
		return ast.Param{}, false
	}
	param.Name = name
	if p.arenas.Name(name) == "self" {
		if !selfAllowed {
			p.errAt(diag.SynUnexpectedToken, nameSpan, "'self' is only allowed as the first parameter of a method")
			return ast.Param{}, false
		}
		param.IsSelf = true
	}

	if p.at(token.Colon) {
		p.advance()
		if mode, ok := ownershipOf(p.lx.Peek().Kind); ok {
			modeTok := p.advance()
			if param.Mode != ast.OwnNone {
				p.errAt(diag.SynUnexpectedToken, modeTok.Span, "ownership mode given twice")
			}
			param.Mode = mode
		}
		if param.Type, ok = p.parseTypeExpr(); !ok {
			return ast.Param{}, false
		}
	}
	param.Span = p.spanFrom(start)
	return param, true
}
