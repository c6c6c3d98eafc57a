package sema

import (
	"gul/internal/symbols"
	"gul/internal/types"
)

// builtinArity bounds the argument count of universe functions; max < 0
// means variadic.
var builtinArity = map[string]struct{ min, max int }{
	"print":  {0, -1},
	"len":    {1, 1},
	"range":  {1, 2},
	"assert": {1, 2},
}

func (tc *typeChecker) prelude() []symbols.PreludeEntry {
	b := tc.types.Builtins()
	return []symbols.PreludeEntry{
		{Name: "print", Kind: symbols.SymbolBuiltin, Type: tc.types.RegisterFn([]types.TypeID{b.Any}, b.Unit, false)},
		{Name: "len", Kind: symbols.SymbolBuiltin, Type: tc.types.RegisterFn([]types.TypeID{b.Any}, b.Int, false)},
		{Name: "range", Kind: symbols.SymbolBuiltin, Type: tc.types.RegisterFn([]types.TypeID{b.Int, b.Int}, tc.types.Range(b.Int), false)},
		{Name: "assert", Kind: symbols.SymbolBuiltin, Type: tc.types.RegisterFn([]types.TypeID{b.Bool, b.String}, b.Unit, false)},
	}
}
