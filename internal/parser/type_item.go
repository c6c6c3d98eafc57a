package parser

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/token"
)

// parseStructStmt parses
//
//	struct Name:
//	    field: T
//	    fn method(self) -> T:
//	        ...
func (p *Parser) parseStructStmt() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("struct name")
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtStructData{Name: name, NameSpan: nameSpan}
	if !p.openMembers("struct '" + p.arenas.Name(name) + "'") {
		return p.arenas.Stmts.NewStruct(p.spanFrom(kw.Span), data), true
	}

	seen := make(map[source.StringID]bool)
	for !p.atOr(token.Dedent, token.EOF) {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Newline, token.Semicolon:
			p.advance()
		case token.KwPass:
			p.advance()
			p.endStmt()
		case token.KwFn:
			if id, ok := p.parseFn(false, true); ok {
				data.Methods = append(data.Methods, id)
			} else {
				p.resyncStmt()
			}
		case token.KwAsync:
			p.advance()
			if !p.at(token.KwFn) {
				p.err(diag.SynUnexpectedToken, "expected 'fn' after 'async', got "+describe(p.lx.Peek()))
				p.resyncStmt()
				continue
			}
			if id, ok := p.parseFn(true, true); ok {
				data.Methods = append(data.Methods, id)
			} else {
				p.resyncStmt()
			}
		case token.Ident:
			field, ok := p.parseField()
			if !ok {
				p.resyncStmt()
				continue
			}
			if seen[field.Name] {
				p.errAt(diag.SynDuplicateEntry, field.Span, "duplicate field '"+p.arenas.Name(field.Name)+"'")
			}
			seen[field.Name] = true
			data.Fields = append(data.Fields, field)
			p.endStmt()
		default:
			p.err(diag.SynUnexpectedToken, "expected a field or method in struct body, got "+describe(tok))
			p.resyncStmt()
		}
	}
	p.skipOptional(token.Dedent)
	return p.arenas.Stmts.NewStruct(p.spanFrom(kw.Span), data), true
}

func (p *Parser) parseField() (ast.Field, bool) {
	name, nameSpan, ok := p.parseIdent("field name")
	if !ok {
		return ast.Field{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return ast.Field{}, false
	}
	typ, ok := p.parseTypeExpr()
	if !ok {
		return ast.Field{}, false
	}
	return ast.Field{Name: name, Span: p.spanFrom(nameSpan), Type: typ}, true
}

// parseEnumStmt parses an enum whose variants are listed one per line or
// separated by commas.
func (p *Parser) parseEnumStmt() (ast.StmtID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent("enum name")
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtEnumData{Name: name, NameSpan: nameSpan}
	if !p.openMembers("enum '" + p.arenas.Name(name) + "'") {
		return p.arenas.Stmts.NewEnum(p.spanFrom(kw.Span), data), true
	}

	seen := make(map[source.StringID]bool)
	for !p.atOr(token.Dedent, token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Newline, token.Semicolon, token.Comma:
			p.advance()
			continue
		case token.KwPass:
			p.advance()
			continue
		}
		variant, vspan, ok := p.parseIdent("enum variant")
		if !ok {
			p.resyncStmt()
			continue
		}
		if seen[variant] {
			p.errAt(diag.SynDuplicateEntry, vspan, "duplicate variant '"+p.arenas.Name(variant)+"'")
		}
		seen[variant] = true
		data.Variants = append(data.Variants, ast.Variant{Name: variant, Span: vspan})
		if !p.atOr(token.Comma, token.Newline, token.Semicolon, token.Dedent, token.EOF) {
			p.err(diag.SynUnexpectedToken, "expected ',' or end of line after variant, got "+describe(p.lx.Peek()))
			p.resyncStmt()
		}
	}
	p.skipOptional(token.Dedent)
	return p.arenas.Stmts.NewEnum(p.spanFrom(kw.Span), data), true
}

// openMembers consumes ": NEWLINE INDENT" before a member list. It returns
// false when the body is empty ("struct S: pass") or missing; a missing
// body has been reported.
func (p *Parser) openMembers(what string) bool {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+what); !ok {
		p.resyncStmt()
		return false
	}
	if p.at(token.KwPass) {
		p.advance()
		p.endStmt()
		return false
	}
	if _, ok := p.expect(token.Newline, diag.SynExpectBlock, "expected the body of "+what+" on the following lines"); !ok {
		p.resyncStmt()
		return false
	}
	if !p.at(token.Indent) {
		p.err(diag.SynExpectBlock, "expected an indented body for "+what)
		return false
	}
	p.advance()
	return true
}
