package codegen

import (
	"strings"

	"gul/internal/types"
)

// fallbackType stands in for types the checker could not pin down.
const fallbackType = "i64"

// rustType maps a checked type to Rust. exact is false when the mapping
// fell back to an approximation.
func (g *generator) rustType(id types.TypeID) (out string, exact bool) {
	return rustTypeOf(g.types, id, false)
}

func rustTypeOf(in *types.Interner, id types.TypeID, boxedFn bool) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return fallbackType, false
	}
	switch tt.Kind {
	case types.KindInt:
		return "i64", true
	case types.KindFloat:
		return "f64", true
	case types.KindBool:
		return "bool", true
	case types.KindString:
		return "String", true
	case types.KindUnit:
		return "()", true
	case types.KindList:
		elem, ok := rustTypeOf(in, tt.Elem, true)
		return "Vec<" + elem + ">", ok
	case types.KindSet:
		elem, ok := rustTypeOf(in, tt.Elem, true)
		return "HashSet<" + elem + ">", ok
	case types.KindDict:
		key, okK := rustTypeOf(in, tt.Key, true)
		value, okV := rustTypeOf(in, tt.Elem, true)
		return "HashMap<" + key + ", " + value + ">", okK && okV
	case types.KindRange:
		elem, ok := rustTypeOf(in, tt.Elem, true)
		return "std::ops::Range<" + elem + ">", ok
	case types.KindTuple:
		info, _ := in.TupleInfo(id)
		parts := make([]string, len(info.Elems))
		exact := true
		for i, e := range info.Elems {
			var ok bool
			parts[i], ok = rustTypeOf(in, e, true)
			exact = exact && ok
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)", exact
		}
		return "(" + strings.Join(parts, ", ") + ")", exact
	case types.KindFn:
		info, _ := in.FnInfo(id)
		parts := make([]string, len(info.Params))
		exact := true
		for i, p := range info.Params {
			var ok bool
			parts[i], ok = rustTypeOf(in, p, true)
			exact = exact && ok
		}
		sig := "Fn(" + strings.Join(parts, ", ") + ")"
		if in.KindOf(info.Result) != types.KindUnit {
			res, ok := rustTypeOf(in, info.Result, true)
			exact = exact && ok
			sig += " -> " + res
		}
		if boxedFn {
			return "Box<dyn " + sig + ">", exact
		}
		return "impl " + sig, exact
	case types.KindStruct:
		info, _ := in.StructInfo(id)
		return rustIdent(in.Strings.MustLookup(info.Name)), true
	case types.KindEnum:
		info, _ := in.EnumInfo(id)
		return rustIdent(in.Strings.MustLookup(info.Name)), true
	default:
		return fallbackType, false
	}
}

// isCopy reports types that Rust copies implicitly.
func (g *generator) isCopy(id types.TypeID) bool {
	switch g.types.KindOf(id) {
	case types.KindInt, types.KindFloat, types.KindBool, types.KindUnit, types.KindEnum:
		return true
	}
	return false
}

// isDisplay reports types printed with {} rather than {:?}.
func (g *generator) isDisplay(id types.TypeID) bool {
	switch g.types.KindOf(id) {
	case types.KindInt, types.KindFloat, types.KindBool, types.KindString:
		return true
	}
	return false
}
