package sema

import (
	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/symbols"
	"gul/internal/types"
)

// genericArity lists the built-in parameterised type names; -1 is variadic.
var genericArity = map[string]int{
	"list":  1,
	"set":   1,
	"dict":  2,
	"tuple": -1,
}

// resolveTypeExpr turns an annotation into a TypeID. Unknown names are
// reported once and resolve to the invalid type.
func (tc *typeChecker) resolveTypeExpr(id ast.TypeExprID) types.TypeID {
	te := tc.builder.Types.Get(id)
	if te == nil || te.Kind == ast.TypeExprBad {
		return types.NoTypeID
	}
	b := tc.types.Builtins()
	name := tc.name(te.Name)
	if te.Kind == ast.TypeExprName {
		switch name {
		case "int":
			return b.Int
		case "float":
			return b.Float
		case "str", "string":
			return b.String
		case "bool":
			return b.Bool
		case "any":
			return b.Any
		case "list":
			return tc.types.List(b.Any)
		case "set":
			return tc.types.Set(b.Any)
		case "dict":
			return tc.types.Dict(b.Any, b.Any)
		case "tuple":
			return tc.types.RegisterTuple(nil)
		}
		if sym, ok := tc.resolver.LookupOne(te.Name, symbols.SymbolStruct.Mask()|symbols.SymbolEnum.Mask()); ok {
			return tc.symbol(sym).Type
		}
		tc.report(diag.SemaUnknownType, te.Span, "unknown type '%s'", name)
		return types.NoTypeID
	}

	want, ok := genericArity[name]
	if !ok {
		tc.report(diag.SemaUnknownType, te.Span, "type '%s' takes no type arguments", name)
		return types.NoTypeID
	}
	if want >= 0 && len(te.Args) != want {
		tc.report(diag.SemaUnknownType, te.Span, "type '%s' expects %d type argument%s, got %d", name, want, plural(want), len(te.Args))
		return types.NoTypeID
	}
	args := make([]types.TypeID, len(te.Args))
	for i, arg := range te.Args {
		args[i] = tc.resolveTypeExpr(arg)
	}
	switch name {
	case "list":
		return tc.types.List(args[0])
	case "set":
		return tc.types.Set(args[0])
	case "dict":
		return tc.types.Dict(args[0], args[1])
	default:
		return tc.types.RegisterTuple(args)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
