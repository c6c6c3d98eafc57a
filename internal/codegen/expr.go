package codegen

import (
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/symbols"
	"gul/internal/types"
)

// expr renders an expression as Rust.
func (g *generator) expr(id ast.ExprID) string {
	e := g.builder.Exprs.Get(id)
	if e == nil {
		return "()"
	}
	switch e.Kind {
	case ast.ExprIdent:
		return g.identExpr(id)
	case ast.ExprLit:
		lit, _ := g.builder.Exprs.Literal(id)
		switch lit.Kind {
		case ast.ExprLitInt:
			return intLiteral(g.name(lit.Raw))
		case ast.ExprLitFloat:
			return floatLiteral(g.name(lit.Raw))
		case ast.ExprLitString:
			return "String::from(" + rustQuote(g.name(lit.Value)) + ")"
		case ast.ExprLitTrue:
			return "true"
		default:
			return "false"
		}
	case ast.ExprBinary:
		return g.binaryExpr(id)
	case ast.ExprUnary:
		data, _ := g.builder.Exprs.Unary(id)
		operand := g.operand(data.Operand, precUnary, false)
		switch data.Op {
		case ast.ExprUnaryNeg:
			return "-" + operand
		case ast.ExprUnaryNot:
			return "!" + operand
		default:
			return operand
		}
	case ast.ExprCall:
		return g.callExpr(id)
	case ast.ExprIndex:
		return g.indexExpr(id)
	case ast.ExprMember:
		return g.memberExpr(id)
	case ast.ExprLambda:
		return g.lambdaExpr(id)
	case ast.ExprMatch:
		return g.matchExpr(id)
	case ast.ExprTypeCtor:
		return g.ctorExpr(id)
	case ast.ExprList:
		data, _ := g.builder.Exprs.Seq(id)
		return g.listLiteral(id, data.Elems)
	case ast.ExprSet:
		data, _ := g.builder.Exprs.Seq(id)
		return g.setLiteral(id, data.Elems)
	case ast.ExprTuple:
		data, _ := g.builder.Exprs.Seq(id)
		return g.tupleLiteral(data.Elems)
	case ast.ExprDict:
		data, _ := g.builder.Exprs.Dict(id)
		return g.dictLiteral(id, data.Entries)
	case ast.ExprGroup:
		data, _ := g.builder.Exprs.Group(id)
		return "(" + g.expr(data.Inner) + ")"
	case ast.ExprAwait:
		data, _ := g.builder.Exprs.Await(id)
		return g.operand(data.Value, precPostfix, false) + ".await"
	default:
		g.warn(diag.GenUnmappedConstruct, e.Span, "expression could not be translated")
		return "unimplemented!()"
	}
}

func (g *generator) identExpr(id ast.ExprID) string {
	ident, _ := g.builder.Exprs.Ident(id)
	name := rustIdent(g.name(ident.Name))
	sym := g.symbolOf(id)
	if sym == nil {
		return name
	}
	symID := g.res.ExprSymbols[id]
	if renamed, ok := g.renamed[symID]; ok {
		return renamed
	}
	if g.fn != nil && sym.Flags&symbols.SymbolFlagTopLevel != 0 && (sym.Kind == symbols.SymbolLet || sym.Kind == symbols.SymbolVar) {
		if !g.captured[symID] {
			g.captured[symID] = true
			g.warn(diag.GenModuleCapture, g.exprSpan(id),
				"module binding '%s' is not visible inside function '%s' in the generated code", g.name(ident.Name), g.name(g.fn.Name))
		}
	}
	if g.derefParam(sym) {
		return "*" + name
	}
	return name
}

// derefParam reports reference parameters read through an explicit deref.
func (g *generator) derefParam(sym *symbols.Symbol) bool {
	if sym.Kind != symbols.SymbolParam || g.name(sym.Name) == "self" {
		return false
	}
	return (sym.Mode == ast.OwnBorrow || sym.Mode == ast.OwnRef) && g.isCopy(sym.Type)
}

// isPlace reports expressions naming storage that Rust would move out of.
func (g *generator) isPlace(id ast.ExprID) bool {
	id = g.builder.Exprs.Unparen(id)
	e := g.builder.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprIdent:
		sym := g.symbolOf(id)
		return sym != nil && sym.Kind.IsValue()
	case ast.ExprIndex:
		return true
	case ast.ExprMember:
		data, _ := g.builder.Exprs.Member(id)
		switch g.kindOf(data.Target) {
		case types.KindStruct, types.KindTuple:
			return g.symbolOf(data.Target) == nil || g.symbolOf(data.Target).Kind.IsValue()
		}
	}
	return false
}

// valueExpr renders an expression used as an owned value: places of
// non-Copy types are cloned so the source binding stays usable.
func (g *generator) valueExpr(id ast.ExprID) string {
	text := g.expr(id)
	t := g.typeOf(id)
	if g.isPlace(id) && !g.isCopy(t) && !g.types.IsUnknown(t) {
		return g.wrap(id, text) + ".clone()"
	}
	return text
}

// place renders an assignment target.
func (g *generator) place(id ast.ExprID) string {
	id = g.builder.Exprs.Unparen(id)
	if _, ok := g.builder.Exprs.Ident(id); ok {
		sym := g.symbolOf(id)
		if sym != nil && sym.Kind == symbols.SymbolParam && sym.Mode == ast.OwnRef && g.name(sym.Name) != "self" {
			return "*" + rustIdent(g.name(sym.Name))
		}
	}
	return g.expr(id)
}

// wrap parenthesizes text unless the expression renders as a postfix-safe
// operand.
func (g *generator) wrap(id ast.ExprID, text string) string {
	if g.precOf(id, text) >= precPostfix {
		return text
	}
	return "(" + text + ")"
}

func (g *generator) memberExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.Member(id)
	member := g.name(data.Name)
	if sym := g.symbolOf(data.Target); sym != nil {
		switch sym.Kind {
		case symbols.SymbolEnum, symbols.SymbolStruct:
			return rustIdent(g.name(sym.Name)) + "::" + rustIdent(member)
		}
	}
	switch g.kindOf(data.Target) {
	case types.KindModule:
		return g.expr(data.Target) + "::" + rustIdent(member)
	case types.KindTuple:
		return g.operand(data.Target, precPostfix, false) + "." + member
	default:
		return g.operand(data.Target, precPostfix, false) + "." + rustIdent(member)
	}
}

func (g *generator) indexExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.Index(id)
	target := g.operand(data.Target, precPostfix, false)
	slice := g.kindOf(data.Index) == types.KindRange
	switch g.kindOf(data.Target) {
	case types.KindList:
		if slice {
			return target + "[" + g.usizeRange(data.Index) + "].to_vec()"
		}
		return target + "[" + g.usize(data.Index) + "]"
	case types.KindString:
		if slice {
			return target + "[" + g.usizeRange(data.Index) + "].to_string()"
		}
		return target + ".chars().nth(" + g.usize(data.Index) + ").map(|c| c.to_string()).unwrap_or_default()"
	case types.KindDict:
		return target + "[&" + g.operand(data.Index, precUnary, false) + "]"
	case types.KindTuple:
		if lit, ok := g.builder.Exprs.Literal(g.builder.Exprs.Unparen(data.Index)); ok && lit.Kind == ast.ExprLitInt {
			return target + "." + g.name(lit.Raw)
		}
	case types.KindRange:
		return target + ".clone().nth(" + g.usize(data.Index) + ").unwrap()"
	}
	g.warn(diag.GenApproximation, g.exprSpan(id), "indexing a value of unknown type")
	return target + "[" + g.expr(data.Index) + "]"
}

// usize converts an index expression for Rust slice indexing.
func (g *generator) usize(id ast.ExprID) string {
	if lit, ok := g.builder.Exprs.Literal(g.builder.Exprs.Unparen(id)); ok && lit.Kind == ast.ExprLitInt {
		return intLiteral(g.name(lit.Raw))
	}
	return g.operand(id, precCast, false) + " as usize"
}

func (g *generator) usizeRange(id ast.ExprID) string {
	bin, ok := g.builder.Exprs.Binary(g.builder.Exprs.Unparen(id))
	if !ok || (bin.Op != ast.ExprBinaryRange && bin.Op != ast.ExprBinaryRangeInclusive) {
		text := g.operand(id, precPostfix, false)
		return text + ".start as usize.." + text + ".end as usize"
	}
	return g.usize(bin.Left) + bin.Op.String() + g.usize(bin.Right)
}

func (g *generator) lambdaExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.Lambda(id)
	sig := g.res.Lambdas[id]
	params := make([]string, len(data.Params))
	for i, p := range data.Params {
		params[i] = rustIdent(g.name(p.Name))
		if sig != nil && i < len(sig.Params) {
			if typ, exact := g.rustType(sig.Params[i].Type); exact {
				params[i] += ": " + typ
			}
		}
	}
	return "|" + joinComma(params) + "| " + g.valueExpr(data.Body)
}

func (g *generator) listLiteral(id ast.ExprID, elems []ast.ExprID) string {
	if len(elems) == 0 {
		return "Vec::new()"
	}
	return "vec![" + joinComma(g.elems(g.types.Elem(g.typeOf(id)), elems)) + "]"
}

func (g *generator) setLiteral(id ast.ExprID, elems []ast.ExprID) string {
	if len(elems) == 0 {
		return "HashSet::new()"
	}
	return "HashSet::from([" + joinComma(g.elems(g.types.Elem(g.typeOf(id)), elems)) + "])"
}

func (g *generator) tupleLiteral(elems []ast.ExprID) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = g.valueExpr(e)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + joinComma(parts) + ")"
}

func (g *generator) dictLiteral(id ast.ExprID, entries []ast.DictEntry) string {
	if len(entries) == 0 {
		return "HashMap::new()"
	}
	dict, _ := g.types.Lookup(g.typeOf(id))
	parts := make([]string, len(entries))
	for i, e := range entries {
		key := g.coerce(g.valueExpr(e.Key), g.typeOf(e.Key), dict.Key)
		value := g.coerce(g.valueExpr(e.Value), g.typeOf(e.Value), dict.Elem)
		parts[i] = "(" + key + ", " + value + ")"
	}
	return "HashMap::from([" + joinComma(parts) + "])"
}

// elems renders collection elements converted to the joined element type.
func (g *generator) elems(elem types.TypeID, ids []ast.ExprID) []string {
	parts := make([]string, len(ids))
	for i, e := range ids {
		parts[i] = g.coerce(g.valueExpr(e), g.typeOf(e), elem)
	}
	return parts
}

// coerce widens an int-valued rendering where a float is expected.
func (g *generator) coerce(text string, from, to types.TypeID) string {
	if g.types.KindOf(from) != types.KindInt || g.types.KindOf(to) != types.KindFloat {
		return text
	}
	if isIntLexeme(text) {
		return text + ".0"
	}
	if isSimple(text) {
		return text + " as f64"
	}
	return "(" + text + ") as f64"
}

func isIntLexeme(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isDigit(s[i]) && s[i] != '_' {
			return false
		}
	}
	return true
}

// isSimple reports a bare identifier or field path.
func isSimple(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, " ()[]{}*&!-+/%<>=|,:\"")
}
