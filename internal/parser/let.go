package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

// parseLetStmt parses "let name [: T] = value" and "var name [: T] [= value]".
// A var without a value needs a type.
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.StmtLetData{Mutable: kw.Kind == token.KwVar}

	name, nameSpan, ok := p.parseIdent("binding name after '" + kw.Text + "'")
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		if data.Type, ok = p.parseTypeExpr(); !ok {
			return ast.NoStmtID, false
		}
	}

	if p.at(token.Assign) {
		p.advance()
		if p.atStmtEnd() {
			p.err(diag.SynExpectExpression, "expected expression after '='")
			return ast.NoStmtID, false
		}
		if data.Value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	} else {
		switch {
		case !data.Mutable:
			p.err(diag.SynUnexpectedToken, "expected '=' after 'let "+p.arenas.Name(name)+"', got "+describe(p.lx.Peek()))
			return ast.NoStmtID, false
		case !data.Type.IsValid():
			p.err(diag.SynExpectType, "'var "+p.arenas.Name(name)+"' without a value needs a type")
			return ast.NoStmtID, false
		}
	}

	id := p.arenas.Stmts.NewLet(p.spanFrom(kw.Span), data)
	return id, p.endStmt()
}
