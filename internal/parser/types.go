package parser

import (
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

// parseTypeExpr parses a type annotation: a name (int, str, Point, or the
// annotation spelling @int) with optional bracketed arguments, as in
// list[int] or dict[str, list[int]].
func (p *Parser) parseTypeExpr() (ast.TypeExprID, bool) {
	tok := p.lx.Peek()
	var name string
	switch {
	case tok.Kind == token.Ident:
		name = identName(tok)
	case tok.Kind.IsTypeCtor():
		name = strings.TrimPrefix(tok.Text, "@")
	default:
		p.err(diag.SynExpectType, "expected a type, got "+describe(tok))
		return ast.NoTypeExprID, false
	}
	p.advance()
	nameID := p.intern(name)
	if !p.at(token.LBracket) {
		return p.arenas.Types.NewName(tok.Span, nameID), true
	}

	p.advance() // '['
	var args []ast.TypeExprID
	for !p.at(token.RBracket) {
		arg, ok := p.parseTypeExpr()
		if !ok {
			p.resyncUntil(token.RBracket)
			p.skipOptional(token.RBracket)
			return ast.NoTypeExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after type arguments"); !ok {
		return ast.NoTypeExprID, false
	}
	if len(args) == 0 {
		p.errAt(diag.SynExpectType, p.spanFrom(tok.Span), "type '"+name+"[]' needs at least one argument")
		return ast.NoTypeExprID, false
	}
	return p.arenas.Types.NewGeneric(p.spanFrom(tok.Span), nameID, args), true
}
