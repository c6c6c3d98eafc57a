package codegen

import (
	"strconv"
	"strings"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/sema"
	"gul/internal/symbols"
	"gul/internal/types"
)

func (g *generator) callExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.Call(id)
	callee := g.builder.Exprs.Unparen(data.Callee)

	if sig := g.res.CallTargets[id]; sig != nil {
		args := "(" + joinComma(g.userArgs(sig, data.Args)) + ")"
		if m, ok := g.builder.Exprs.Member(callee); ok {
			method := rustIdent(g.name(m.Name))
			if sig.Static {
				return g.expr(m.Target) + "::" + method + args
			}
			return g.operand(m.Target, precPostfix, false) + "." + method + args
		}
		return g.expr(callee) + args
	}

	if sym := g.symbolOf(callee); sym != nil {
		switch sym.Kind {
		case symbols.SymbolBuiltin:
			return g.builtinCall(id, g.name(sym.Name), data.Args)
		case symbols.SymbolStruct:
			return g.structLiteral(sym, data.Args)
		}
	}

	if m, ok := g.builder.Exprs.Member(callee); ok {
		if text, ok := g.containerMethod(id, m, data.Args); ok {
			return text
		}
	}

	parts := make([]string, len(data.Args))
	var params []types.TypeID
	if info, ok := g.types.FnInfo(g.typeOf(callee)); ok {
		params = info.Params
	}
	for i, a := range data.Args {
		parts[i] = g.valueExpr(a)
		if i < len(params) {
			parts[i] = g.coerce(parts[i], g.typeOf(a), params[i])
		}
	}
	return g.operand(callee, precPostfix, false) + "(" + joinComma(parts) + ")"
}

// isBuiltinCall reports a call of the universe function name.
func (g *generator) isBuiltinCall(id ast.ExprID, name string) bool {
	data, ok := g.builder.Exprs.Call(id)
	if !ok {
		return false
	}
	sym := g.symbolOf(data.Callee)
	return sym != nil && sym.Kind == symbols.SymbolBuiltin && g.name(sym.Name) == name
}

// userArgs renders arguments according to the ownership mode of each
// parameter.
func (g *generator) userArgs(sig *sema.Signature, args []ast.ExprID) []string {
	params := sig.Args()
	out := make([]string, len(args))
	for i, a := range args {
		if i >= len(params) {
			out[i] = g.valueExpr(a)
			continue
		}
		p := params[i]
		switch p.Mode {
		case ast.OwnBorrow:
			out[i] = "&" + g.borrowed(a)
		case ast.OwnRef:
			out[i] = "&mut " + g.borrowed(a)
		case ast.OwnMove:
			out[i] = g.coerce(g.expr(a), g.typeOf(a), p.Type)
		default:
			out[i] = g.coerce(g.valueExpr(a), g.typeOf(a), p.Type)
		}
	}
	return out
}

// borrowed renders the operand of & or &mut.
func (g *generator) borrowed(id ast.ExprID) string {
	if g.isPlace(id) {
		return g.paren(id, g.place(id), precUnary, false)
	}
	return g.operand(id, precUnary, false)
}

func (g *generator) structLiteral(sym *symbols.Symbol, args []ast.ExprID) string {
	name := rustIdent(g.name(sym.Name))
	info, ok := g.types.StructInfo(sym.Type)
	if !ok || len(info.Fields) == 0 {
		return name
	}
	parts := make([]string, 0, len(info.Fields))
	for i, f := range info.Fields {
		if i >= len(args) {
			break
		}
		parts = append(parts, rustIdent(g.name(f.Name))+": "+g.coerce(g.valueExpr(args[i]), g.typeOf(args[i]), f.Type))
	}
	return name + " { " + joinComma(parts) + " }"
}

func (g *generator) builtinCall(id ast.ExprID, name string, args []ast.ExprID) string {
	switch name {
	case "print":
		if len(args) == 0 {
			return "println!()"
		}
		verbs := make([]string, len(args))
		parts := make([]string, len(args))
		for i, a := range args {
			verbs[i] = "{:?}"
			if g.isDisplay(g.typeOf(a)) {
				verbs[i] = "{}"
			}
			parts[i] = g.expr(a)
		}
		return "println!(\"" + strings.Join(verbs, " ") + "\", " + joinComma(parts) + ")"
	case "len":
		if len(args) != 1 {
			break
		}
		arg := args[0]
		switch g.kindOf(arg) {
		case types.KindString:
			return "(" + g.operand(arg, precPostfix, false) + ".chars().count() as i64)"
		case types.KindRange:
			r := g.operand(arg, precPostfix, false)
			return "(" + r + ".end - " + r + ".start).max(0)"
		case types.KindTuple:
			info, _ := g.types.TupleInfo(g.typeOf(arg))
			return strconv.Itoa(len(info.Elems))
		}
		return "(" + g.operand(arg, precPostfix, false) + ".len() as i64)"
	case "range":
		switch len(args) {
		case 1:
			return "0.." + g.operand(args[0], precRange, true)
		case 2:
			return g.operand(args[0], precRange, false) + ".." + g.operand(args[1], precRange, true)
		}
	case "assert":
		switch len(args) {
		case 1:
			return "assert!(" + g.expr(args[0]) + ")"
		case 2:
			return "assert!(" + g.expr(args[0]) + ", \"{}\", " + g.expr(args[1]) + ")"
		}
	}
	g.warn(diag.GenUnmappedConstruct, g.exprSpan(id), "call of '%s' could not be translated", name)
	return "unimplemented!()"
}

func (g *generator) ctorExpr(id ast.ExprID) string {
	data, _ := g.builder.Exprs.TypeCtor(id)
	switch data.Ctor {
	case ast.TypeCtorList:
		if src, ok := g.conversionSource(data.Args); ok {
			return g.operand(src, precPostfix, false) + ".clone().into_iter().collect::<Vec<_>>()"
		}
		return g.listLiteral(id, data.Args)
	case ast.TypeCtorSet:
		if src, ok := g.conversionSource(data.Args); ok {
			return g.operand(src, precPostfix, false) + ".clone().into_iter().collect::<HashSet<_>>()"
		}
		return g.setLiteral(id, data.Args)
	case ast.TypeCtorDict:
		return g.dictLiteral(id, data.Entries)
	case ast.TypeCtorTuple:
		return g.tupleLiteral(data.Args)
	}
	if len(data.Args) != 1 {
		g.warn(diag.GenUnmappedConstruct, g.exprSpan(id), "conversion takes exactly one argument")
		return "unimplemented!()"
	}
	return g.convert(id, data.Ctor, data.Args[0])
}

// conversionSource returns the argument of @list(xs) and @set(xs).
func (g *generator) conversionSource(args []ast.ExprID) (ast.ExprID, bool) {
	if len(args) != 1 {
		return ast.NoExprID, false
	}
	if g.types.Family(g.typeOf(args[0]))&(types.FamilyList|types.FamilySet|types.FamilyDict|types.FamilyRange) == 0 {
		return ast.NoExprID, false
	}
	return args[0], true
}

func (g *generator) convert(id ast.ExprID, ctor ast.TypeCtorKind, arg ast.ExprID) string {
	kind := g.kindOf(arg)
	text := g.expr(arg)
	postfix := g.paren(arg, text, precPostfix, false)
	cast := g.paren(arg, text, precCast, false)
	switch ctor {
	case ast.TypeCtorInt:
		switch kind {
		case types.KindInt:
			return text
		case types.KindFloat, types.KindBool:
			return "(" + cast + " as i64)"
		case types.KindString:
			return postfix + ".trim().parse::<i64>().unwrap_or_default()"
		}
	case ast.TypeCtorFloat:
		switch kind {
		case types.KindFloat:
			return text
		case types.KindInt:
			return "(" + cast + " as f64)"
		case types.KindString:
			return postfix + ".trim().parse::<f64>().unwrap_or_default()"
		}
	case ast.TypeCtorStr:
		if g.isDisplay(g.typeOf(arg)) {
			return postfix + ".to_string()"
		}
		return "format!(\"{:?}\", " + text + ")"
	case ast.TypeCtorBool:
		switch kind {
		case types.KindBool:
			return text
		case types.KindInt:
			return "(" + text + " != 0)"
		case types.KindFloat:
			return "(" + text + " != 0.0)"
		case types.KindString, types.KindList, types.KindSet, types.KindDict:
			return "(!" + postfix + ".is_empty())"
		}
	}
	g.warn(diag.GenApproximation, g.exprSpan(id), "conversion of a value of unknown type")
	return text
}
