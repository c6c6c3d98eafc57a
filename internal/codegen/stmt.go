package codegen

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (g *generator) emitStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		g.emitStmt(id)
	}
}

// emitBlock writes `head {`, the statements one level deeper, and `}`.
func (g *generator) emitBlock(head string, stmts []ast.StmtID) {
	g.w.Line(head + " {")
	g.w.IndentPush()
	g.emitStmts(stmts)
	g.w.IndentPop()
	g.w.WriteString("}")
}

func (g *generator) emitStmt(id ast.StmtID) {
	stmt := g.builder.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBad:
		g.warn(diag.GenUnmappedConstruct, stmt.Span, "statement could not be translated")
		g.w.Line("unimplemented!();")
	case ast.StmtPass:
	case ast.StmtLet:
		data, _ := g.builder.Stmts.Let(id)
		g.emitLet(id, data)
	case ast.StmtFn:
		data, _ := g.builder.Stmts.Fn(id)
		g.emitFn(id, data)
	case ast.StmtStruct:
		data, _ := g.builder.Stmts.Struct(id)
		g.emitStruct(id, data)
	case ast.StmtEnum:
		data, _ := g.builder.Stmts.Enum(id)
		g.emitEnum(data)
	case ast.StmtIf:
		data, _ := g.builder.Stmts.If(id)
		for i, br := range data.Branches {
			head := "if " + g.expr(br.Cond)
			if i > 0 {
				head = " else " + head
			}
			g.emitBlock(head, br.Body)
		}
		if data.HasElse {
			g.emitBlock(" else", data.Else)
		}
		g.w.Newline()
	case ast.StmtWhile:
		data, _ := g.builder.Stmts.While(id)
		g.emitBlock("while "+g.expr(data.Cond), data.Body)
		g.w.Newline()
	case ast.StmtFor:
		data, _ := g.builder.Stmts.For(id)
		g.emitBlock("for "+rustIdent(g.name(data.Var))+" in "+g.iterable(data.Iter), data.Body)
		g.w.Newline()
	case ast.StmtLoop:
		data, _ := g.builder.Stmts.Loop(id)
		g.emitBlock("loop", data.Body)
		g.w.Newline()
	case ast.StmtMatch:
		data, _ := g.builder.Stmts.Match(id)
		g.emitMatch(data.Match)
		g.w.Line(";")
	case ast.StmtBreak:
		g.w.Line("break;")
	case ast.StmtContinue:
		g.w.Line("continue;")
	case ast.StmtReturn:
		data, _ := g.builder.Stmts.Return(id)
		if !data.Value.IsValid() {
			g.w.Line("return;")
			return
		}
		value := g.valueExpr(data.Value)
		if g.fn != nil {
			value = g.coerce(value, g.typeOf(data.Value), g.fn.Result)
		}
		g.w.Line("return " + value + ";")
	case ast.StmtImport:
		data, _ := g.builder.Stmts.Import(id)
		g.emitImport(data)
	case ast.StmtAssign:
		data, _ := g.builder.Stmts.Assign(id)
		g.emitAssign(data)
	case ast.StmtExpr:
		data, _ := g.builder.Stmts.Expr(id)
		if m, ok := g.builder.Exprs.Match(g.builder.Exprs.Unparen(data.Expr)); ok && m != nil {
			g.emitMatch(g.builder.Exprs.Unparen(data.Expr))
			g.w.Line(";")
			return
		}
		g.w.Line(g.expr(data.Expr) + ";")
	case ast.StmtTry:
		data, _ := g.builder.Stmts.Try(id)
		g.emitTry(stmt.Span, data)
	case ast.StmtForeign:
		data, _ := g.builder.Stmts.Foreign(id)
		g.emitForeign(data)
	case ast.StmtEntry:
		data, _ := g.builder.Stmts.Entry(id)
		g.emitStmts(data.Body)
	default:
		g.warn(diag.GenUnmappedConstruct, stmt.Span, "no translation for %s statement", stmt.Kind)
	}
}

func (g *generator) emitLet(id ast.StmtID, data *ast.StmtLetData) {
	head := "let "
	if data.Mutable {
		head += "mut "
	}
	head += rustIdent(g.name(data.Name))
	sym := g.res.Table.Symbols.Get(g.res.StmtSymbols[id])
	declared := types.NoTypeID
	if sym != nil && data.Type.IsValid() {
		declared = sym.Type
		if typ, exact := g.rustType(declared); exact {
			head += ": " + typ
		}
	}
	if !data.Value.IsValid() {
		g.w.Line(head + ";")
		return
	}
	if declared == types.NoTypeID && sym != nil && g.isEmptyLiteral(data.Value) {
		head += g.emptyLiteralType(data, g.res.StmtSymbols[id], sym)
	}
	value := g.valueExpr(data.Value)
	if declared != types.NoTypeID {
		value = g.coerce(value, g.typeOf(data.Value), declared)
	}
	g.w.Line(head + " = " + value + ";")
}

func (g *generator) isEmptyLiteral(id ast.ExprID) bool {
	id = g.builder.Exprs.Unparen(id)
	e := g.builder.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprList, ast.ExprSet:
		data, _ := g.builder.Exprs.Seq(id)
		return len(data.Elems) == 0
	case ast.ExprDict:
		data, _ := g.builder.Exprs.Dict(id)
		return len(data.Entries) == 0
	}
	return false
}

// emptyLiteralType annotates a binding of an empty collection literal.
// Without a known element type the binding is warned about, and annotated
// with the fallback only when nothing reads it; a later use lets rustc
// infer the element type instead.
func (g *generator) emptyLiteralType(data *ast.StmtLetData, symID symbols.SymbolID, sym *symbols.Symbol) string {
	typ, exact := g.rustType(sym.Type)
	if exact {
		return ": " + typ
	}
	name := g.name(data.Name)
	if g.isRead(symID) {
		g.warn(diag.GenApproximation, data.NameSpan, "element type of '%s' is unknown; annotate it so rustc can infer the collection", name)
		return ""
	}
	g.warn(diag.GenApproximation, data.NameSpan, "element type of unused '%s' is unknown; emitted as %s", name, typ)
	return ": " + typ
}

// isRead reports whether any expression resolves to the symbol.
func (g *generator) isRead(id symbols.SymbolID) bool {
	for _, ref := range g.res.ExprSymbols {
		if ref == id {
			return true
		}
	}
	return false
}

func (g *generator) emitAssign(data *ast.StmtAssignData) {
	target := g.builder.Exprs.Unparen(data.Target)
	targetType := g.typeOf(target)
	value := g.valueExpr(data.Value)

	// HashMap has no IndexMut; a keyed store becomes insert.
	if ix, ok := g.builder.Exprs.Index(target); ok && data.Op == ast.AssignSet && g.kindOf(ix.Target) == types.KindDict {
		g.w.Line(g.place(ix.Target) + ".insert(" + g.valueExpr(ix.Index) + ", " + value + ");")
		return
	}
	place := g.place(target)
	switch {
	case data.Op == ast.AssignSet:
		g.w.Line(place + " = " + g.coerce(value, g.typeOf(data.Value), targetType) + ";")
	case data.Op == ast.AssignAdd && g.types.KindOf(targetType) == types.KindString:
		g.w.Line(place + " += &" + g.wrap(data.Value, value) + ";")
	case data.Op == ast.AssignAdd && g.types.KindOf(targetType) == types.KindList:
		g.w.Line(place + ".extend(" + value + ");")
	default:
		g.w.Line(place + " " + data.Op.String() + " " + g.coerce(value, g.typeOf(data.Value), targetType) + ";")
	}
}

// iterable renders the iterator of a for loop so that the loop variable
// receives owned values.
func (g *generator) iterable(id ast.ExprID) string {
	text := g.expr(id)
	switch g.kindOf(id) {
	case types.KindRange:
		return text
	case types.KindDict:
		return g.wrap(id, text) + ".keys().cloned().collect::<Vec<_>>()"
	case types.KindString:
		return g.wrap(id, text) + ".chars().map(|c| c.to_string()).collect::<Vec<_>>()"
	case types.KindList, types.KindSet:
		if g.isPlace(id) {
			return g.wrap(id, text) + ".clone()"
		}
		return text
	default:
		return text
	}
}

// emitTry lowers try/catch/finally onto catch_unwind. Only panics are
// caught, and control flow leaving the protected body is not preserved.
func (g *generator) emitTry(span source.Span, data *ast.StmtTryData) {
	g.warn(diag.GenApproximation, span, "try/catch is lowered to std::panic::catch_unwind")
	if len(data.Catches) > 1 {
		g.warn(diag.GenApproximation, data.Catches[1].Span, "only the first catch clause is kept")
	}
	result := g.freshName("caught")
	g.w.Line("let " + result + " = std::panic::catch_unwind(std::panic::AssertUnwindSafe(|| {")
	g.w.IndentPush()
	g.emitStmts(data.Body)
	g.w.IndentPop()
	g.w.Line("}));")
	if len(data.Catches) > 0 {
		c := data.Catches[0]
		payload := g.freshName("payload")
		g.w.Line("if let Err(" + payload + ") = " + result + " {")
		g.w.IndentPush()
		if c.Name != source.NoStringID {
			g.w.Line("let " + rustIdent(g.name(c.Name)) + ": String = " + payload +
				".downcast_ref::<String>().cloned().or_else(|| " + payload +
				".downcast_ref::<&str>().map(|s| s.to_string())).unwrap_or_default();")
		}
		g.emitStmts(c.Body)
		g.w.IndentPop()
		g.w.Line("}")
	}
	if data.HasFinally {
		g.w.Line("{")
		g.w.IndentPush()
		g.emitStmts(data.Finally)
		g.w.IndentPop()
		g.w.Line("}")
	}
}
