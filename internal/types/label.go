package types

import (
	"strings"

	"gul/internal/source"
)

// Label returns a user-friendly label for a TypeID, spelled the way types
// are written in annotations.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindAny:
		return "any"
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list[" + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindSet:
		return "set[" + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindRange:
		return "range[" + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindDict:
		return "dict[" + labelDepth(typesIn, tt.Key, depth+1) + ", " + labelDepth(typesIn, tt.Elem, depth+1) + "]"
	case KindTuple:
		info, ok := typesIn.TupleInfo(id)
		if !ok {
			return "tuple[?]"
		}
		return "tuple[" + joinLabels(typesIn, info.Elems, depth) + "]"
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok {
			return "fn(?)"
		}
		prefix := "fn("
		if info.Async {
			prefix = "async fn("
		}
		return prefix + joinLabels(typesIn, info.Params, depth) + ") -> " + labelDepth(typesIn, info.Result, depth+1)
	case KindStruct:
		if info, ok := typesIn.StructInfo(id); ok {
			return lookupNameFallback(typesIn.Strings, info.Name)
		}
		return "?"
	case KindEnum:
		if info, ok := typesIn.EnumInfo(id); ok {
			return lookupNameFallback(typesIn.Strings, info.Name)
		}
		return "?"
	case KindModule:
		if info, ok := typesIn.ModuleInfo(id); ok {
			return "module " + info.Path
		}
		return "module"
	default:
		return "?"
	}
}

func joinLabels(typesIn *Interner, ids []TypeID, depth int) string {
	parts := make([]string, len(ids))
	for i, elem := range ids {
		parts[i] = labelDepth(typesIn, elem, depth+1)
	}
	return strings.Join(parts, ", ")
}

func lookupNameFallback(stringsIn *source.Interner, id source.StringID) string {
	if stringsIn == nil {
		return "?"
	}
	name, ok := stringsIn.Lookup(id)
	if !ok || name == "" {
		return "?"
	}
	return name
}
