package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/token"
)

// parseForeignStmt records a foreign block's tag and captured body. The
// body arrives from the lexer as one ForeignBody token and is never
// tokenized as GUL.
func (p *Parser) parseForeignStmt() (ast.StmtID, bool) {
	at := p.advance()
	tag := token.ForeignTag(at.Kind)
	braced := true
	if p.at(token.Colon) {
		p.advance()
		braced = false
	}
	body, ok := p.expect(token.ForeignBody, diag.SynUnexpectedToken, "expected ':' or '{' and a body after '"+at.Text+"'")
	if !ok {
		return ast.NoStmtID, false
	}
	id := p.arenas.Stmts.NewForeign(p.spanFrom(at.Span), ast.StmtForeignData{
		Tag:      p.intern(tag),
		Body:     p.intern(body.Value),
		BodySpan: body.Span,
		Braced:   braced,
	})
	return id, p.endStmt()
}
