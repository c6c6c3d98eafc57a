package codegen

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/types"
)

// containerMethod renders a runtime method on a list, set, dict or string
// receiver. ok is false when the receiver is not one of those kinds.
func (g *generator) containerMethod(id ast.ExprID, member *ast.ExprMemberData, args []ast.ExprID) (string, bool) {
	receiver := g.typeOf(member.Target)
	kind := g.types.KindOf(receiver)
	switch kind {
	case types.KindList, types.KindSet, types.KindDict, types.KindString:
	default:
		return "", false
	}
	name := g.name(member.Name)
	m, ok := types.LookupMethod(kind, name)
	if !ok || len(args) < m.MinArgs || len(args) > m.MaxArgs {
		g.warn(diag.GenUnmappedConstruct, g.exprSpan(id), "method '%s' on %s has no Rust mapping; emitted as written", name, kind)
		return "", false
	}
	t := g.operand(member.Target, precPostfix, false)

	switch m.Name {
	case "len":
		if kind == types.KindString {
			return "(" + t + ".chars().count() as i64)", true
		}
		return "(" + t + ".len() as i64)", true
	case "is_empty", "clear", "reverse":
		return t + "." + m.Name + "()", true
	case "copy":
		return t + ".clone()", true
	}

	switch kind {
	case types.KindList:
		return g.listMethod(t, receiver, m, args), true
	case types.KindSet:
		return g.setMethod(t, receiver, m, args), true
	case types.KindDict:
		return g.dictMethod(t, receiver, m, args), true
	default:
		return g.stringMethod(member.Target, t, m, args), true
	}
}

func (g *generator) listMethod(t string, receiver types.TypeID, m types.ContainerMethod, args []ast.ExprID) string {
	elem := g.types.Elem(receiver)
	switch m.Name {
	case "push":
		return t + ".push(" + g.element(args[0], elem) + ")"
	case "pop":
		if len(args) == 1 {
			return t + ".remove(" + g.usize(args[0]) + ")"
		}
		return t + ".pop().unwrap()"
	case "insert":
		return t + ".insert(" + g.usize(args[0]) + ", " + g.element(args[1], elem) + ")"
	case "remove":
		return "{ let i = " + g.position(t, args[0]) + "; " + t + ".remove(i); }"
	case "extend":
		return t + ".extend(" + g.valueExpr(args[0]) + ")"
	case "sort":
		if g.types.KindOf(elem) == types.KindFloat {
			return t + ".sort_by(|a, b| a.partial_cmp(b).unwrap())"
		}
		return t + ".sort()"
	case "contains":
		return t + ".contains(&" + g.borrowed(args[0]) + ")"
	case "index":
		return "(" + g.position(t, args[0]) + " as i64)"
	default: // count
		return "(" + t + ".iter().filter(|e| **e == " + g.operand(args[0], precCompare, true) + ").count() as i64)"
	}
}

func (g *generator) position(t string, value ast.ExprID) string {
	return t + ".iter().position(|e| *e == " + g.operand(value, precCompare, true) + ").unwrap()"
}

func (g *generator) setMethod(t string, receiver types.TypeID, m types.ContainerMethod, args []ast.ExprID) string {
	switch m.Name {
	case "insert":
		return t + ".insert(" + g.element(args[0], g.types.Elem(receiver)) + ")"
	case "remove", "contains":
		return t + "." + m.Name + "(&" + g.borrowed(args[0]) + ")"
	default: // union, intersection, difference
		return t + "." + m.Name + "(&" + g.borrowed(args[0]) + ").cloned().collect::<HashSet<_>>()"
	}
}

func (g *generator) dictMethod(t string, receiver types.TypeID, m types.ContainerMethod, args []ast.ExprID) string {
	tt, _ := g.types.Lookup(receiver)
	switch m.Name {
	case "get":
		lookup := t + ".get(&" + g.borrowed(args[0]) + ").cloned()"
		if len(args) == 2 {
			return lookup + ".unwrap_or(" + g.element(args[1], tt.Elem) + ")"
		}
		return lookup + ".unwrap_or_default()"
	case "keys", "values":
		return t + "." + m.Name + "().cloned().collect::<Vec<_>>()"
	case "contains_key":
		return t + ".contains_key(&" + g.borrowed(args[0]) + ")"
	case "insert":
		return t + ".insert(" + g.element(args[0], tt.Key) + ", " + g.element(args[1], tt.Elem) + ")"
	default: // remove
		return t + ".remove(&" + g.borrowed(args[0]) + ").unwrap()"
	}
}

func (g *generator) stringMethod(target ast.ExprID, t string, m types.ContainerMethod, args []ast.ExprID) string {
	switch m.Name {
	case "to_uppercase", "to_lowercase":
		return t + "." + m.Name + "()"
	case "trim":
		return t + ".trim().to_string()"
	case "split":
		return t + ".split(" + g.strSlice(args[0]) + ").map(String::from).collect::<Vec<_>>()"
	case "join":
		return g.operand(args[0], precPostfix, false) + ".join(" + g.strSlice(target) + ")"
	case "replace":
		return t + ".replace(" + g.strSlice(args[0]) + ", " + g.strSlice(args[1]) + ")"
	case "find":
		return t + ".find(" + g.strSlice(args[0]) + ").map(|i| i as i64).unwrap_or(-1)"
	default: // contains, starts_with, ends_with
		return t + "." + m.Name + "(" + g.strSlice(args[0]) + ")"
	}
}

// element renders a value stored into a container of element type elem.
func (g *generator) element(id ast.ExprID, elem types.TypeID) string {
	return g.coerce(g.valueExpr(id), g.typeOf(id), elem)
}

// strSlice renders a string argument where Rust takes &str. Literals stay
// plain string slices.
func (g *generator) strSlice(id ast.ExprID) string {
	if lit, ok := g.builder.Exprs.Literal(g.builder.Exprs.Unparen(id)); ok && lit.Kind == ast.ExprLitString {
		return rustQuote(g.name(lit.Value))
	}
	return "&" + g.borrowed(id)
}
