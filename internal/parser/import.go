package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

// parseImportStmt parses "@imp a.b.c" and the grouped "@imp a.b{c, d}".
func (p *Parser) parseImportStmt() (ast.StmtID, bool) {
	at := p.advance()
	var data ast.StmtImportData

	for {
		seg, _, ok := p.parseIdent("module path after '@imp'")
		if !ok {
			return ast.NoStmtID, false
		}
		data.Path = append(data.Path, seg)
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}

	if p.at(token.LBrace) {
		p.advance()
		data.Grouped = true
		seen := make(map[source.StringID]bool)
		for !p.at(token.RBrace) {
			name, sp, ok := p.parseIdent("imported name")
			if !ok {
				p.resyncUntil(token.RBrace)
				p.skipOptional(token.RBrace)
				return ast.NoStmtID, false
			}
			if seen[name] {
				p.errAt(diag.SynDuplicateEntry, sp, "'"+p.arenas.Name(name)+"' imported twice")
			}
			seen[name] = true
			data.Names = append(data.Names, name)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after imported names"); !ok {
			return ast.NoStmtID, false
		}
		if len(data.Names) == 0 {
			p.errAt(diag.SynBadImport, p.spanFrom(at.Span), "grouped import lists no names")
			return ast.NoStmtID, false
		}
	}

	id := p.arenas.Stmts.NewImport(p.spanFrom(at.Span), data)
	return id, p.endStmt()
}
