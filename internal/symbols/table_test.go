package symbols

import (
	"testing"

	"gul/internal/ast"
	"gul/internal/source"
)

func TestUniverseIsShared(t *testing.T) {
	table := NewTable(Hints{}, nil)
	first := table.Universe()
	second := table.Universe()
	if !first.IsValid() || first != second {
		t.Fatalf("expected Universe to reuse its scope, got %v and %v", first, second)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPreludeInstalledOnce(t *testing.T) {
	table := NewTable(Hints{}, nil)
	prelude := []PreludeEntry{{Name: "print", Kind: SymbolBuiltin}, {Name: "len", Kind: SymbolBuiltin}}
	NewResolver(table, source.Span{}, ResolverOptions{Prelude: prelude})
	NewResolver(table, source.Span{}, ResolverOptions{Prelude: prelude})
	universe := table.Scopes.Get(table.Universe())
	if len(universe.Symbols) != 2 {
		t.Fatalf("expected 2 builtins, got %d", len(universe.Symbols))
	}
	id, ok := table.Lookup(table.Universe(), table.Strings.Intern("print"))
	if !ok || table.Symbols.Get(id).Flags&SymbolFlagBuiltin == 0 {
		t.Fatalf("print should be a builtin symbol")
	}
}

func TestShadowingResolvesInnermost(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table, source.Span{}, ResolverOptions{})
	x := table.Strings.Intern("x")

	outer := res.Declare(x, source.Span{}, SymbolLet, 0, SymbolDecl{})
	block := res.Enter(ScopeBlock, ast.StmtID(1), source.Span{})
	inner := res.Declare(x, source.Span{}, SymbolVar, SymbolFlagMutable, SymbolDecl{})

	if got, _ := res.Lookup(x); got != inner {
		t.Fatalf("inside block: got %d, want inner %d", got, inner)
	}
	res.Leave(block)
	if got, _ := res.Lookup(x); got != outer {
		t.Fatalf("after block: got %d, want outer %d", got, outer)
	}

	again := res.Declare(x, source.Span{}, SymbolLet, 0, SymbolDecl{})
	if got, _ := res.Lookup(x); got != again {
		t.Fatalf("redeclaration in the same scope should shadow")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLookupMissing(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table, source.Span{}, ResolverOptions{})
	if _, ok := res.Lookup(table.Strings.Intern("nope")); ok {
		t.Fatalf("lookup of an undeclared name must fail")
	}
}

func TestLookupOneFiltersKinds(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table, source.Span{}, ResolverOptions{})
	name := table.Strings.Intern("Point")
	structSym := res.Declare(name, source.Span{}, SymbolStruct, 0, SymbolDecl{})
	res.Enter(ScopeFunction, ast.NoStmtID, source.Span{})
	res.Declare(name, source.Span{}, SymbolParam, 0, SymbolDecl{})

	got, ok := res.LookupOne(name, SymbolStruct.Mask()|SymbolEnum.Mask())
	if !ok || got != structSym {
		t.Fatalf("LookupOne should skip the parameter, got %d", got)
	}
	if _, ok := res.LookupOne(name, KindMaskNone); ok {
		t.Fatalf("empty mask must not match")
	}
}

func TestEnclosingStopsAtFunction(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table, source.Span{}, ResolverOptions{})
	loop := res.Enter(ScopeLoop, ast.NoStmtID, source.Span{})
	if got := res.Enclosing(ScopeLoop, ScopeFunction); got != loop {
		t.Fatalf("expected loop scope, got %d", got)
	}
	fn := res.Enter(ScopeFunction, ast.NoStmtID, source.Span{})
	res.Enter(ScopeBlock, ast.NoStmtID, source.Span{})
	if got := res.Enclosing(ScopeLoop, ScopeFunction); got != fn {
		t.Fatalf("function boundary should hide the outer loop, got %d", got)
	}
}

func TestLeaveUnbalancedPanics(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table, source.Span{}, ResolverOptions{})
	outer := res.Enter(ScopeBlock, ast.NoStmtID, source.Span{})
	res.Enter(ScopeBlock, ast.NoStmtID, source.Span{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unbalanced leave")
		}
	}()
	res.Leave(outer)
}
