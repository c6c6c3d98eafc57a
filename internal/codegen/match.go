package codegen

import (
	"gul/internal/ast"
	"gul/internal/types"
)

// matchExpr renders a match used as a value. Continuation lines are indented
// relative to the line the match starts on.
func (g *generator) matchExpr(id ast.ExprID) string {
	outer := g.w
	g.w = &Writer{indentWidth: outer.indentWidth, indentLevel: outer.indentLevel}
	g.emitMatch(id)
	text := g.w.String()
	g.w = outer
	return text
}

// emitMatch writes a Rust match without its trailing newline.
func (g *generator) emitMatch(id ast.ExprID) {
	data, _ := g.builder.Exprs.Match(id)
	scrutineeType := g.typeOf(data.Scrutinee)
	strScrutinee := g.types.KindOf(scrutineeType) == types.KindString
	scrutinee := g.expr(data.Scrutinee)
	if strScrutinee {
		scrutinee = g.paren(data.Scrutinee, scrutinee, precPostfix, false) + ".as_str()"
	}
	result := g.typeOf(id)
	valued := g.types.KindOf(result) != types.KindUnit

	g.w.Line("match " + scrutinee + " {")
	g.w.IndentPush()
	exhaustive := false
	for _, arm := range data.Arms {
		pat := g.builder.Patterns.Get(arm.Pattern)
		head := g.pattern(pat)
		if arm.Guard.IsValid() {
			head += " if " + g.expr(arm.Guard)
		} else if pat != nil && pat.IsIrrefutable() {
			exhaustive = true
		}
		// A bound str scrutinee arrives as &str.
		rebind := ""
		if strScrutinee && pat != nil && pat.Kind == ast.PatBind {
			name := rustIdent(g.name(pat.Name))
			rebind = "let " + name + " = " + name + ".to_string();"
		}
		if arm.IsBlock {
			g.w.Line(head + " => {")
			g.w.IndentPush()
			if rebind != "" {
				g.w.Line(rebind)
			}
			g.emitStmts(arm.Block)
			g.w.IndentPop()
			g.w.Line("}")
			continue
		}
		value := g.coerce(g.valueExpr(arm.Value), g.typeOf(arm.Value), result)
		if rebind != "" {
			value = "{ " + rebind + " " + value + " }"
		}
		g.w.Line(head + " => " + value + ",")
	}
	if !exhaustive {
		if valued {
			g.w.Line("_ => unreachable!(),")
		} else {
			g.w.Line("_ => {}")
		}
	}
	g.w.IndentPop()
	g.w.WriteString("}")
}

func (g *generator) pattern(pat *ast.Pattern) string {
	if pat == nil {
		return "_"
	}
	switch pat.Kind {
	case ast.PatBind:
		return rustIdent(g.name(pat.Name))
	case ast.PatVariant:
		return rustIdent(g.name(pat.Enum)) + "::" + rustIdent(g.name(pat.Name))
	case ast.PatLiteral:
		return g.literalPattern(pat.Literal)
	default:
		return "_"
	}
}

// literalPattern renders a literal as a pattern; strings match as &str.
func (g *generator) literalPattern(id ast.ExprID) string {
	id = g.builder.Exprs.Unparen(id)
	if un, ok := g.builder.Exprs.Unary(id); ok && un.Op == ast.ExprUnaryNeg {
		return "-" + g.literalPattern(un.Operand)
	}
	lit, ok := g.builder.Exprs.Literal(id)
	if !ok {
		return "_"
	}
	switch lit.Kind {
	case ast.ExprLitString:
		return rustQuote(g.name(lit.Value))
	case ast.ExprLitInt:
		return intLiteral(g.name(lit.Raw))
	case ast.ExprLitFloat:
		return floatLiteral(g.name(lit.Raw))
	case ast.ExprLitTrue:
		return "true"
	default:
		return "false"
	}
}
