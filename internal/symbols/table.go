package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"gul/internal/ast"
	"gul/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes   *Scopes
	Symbols  *Symbols
	Strings  *source.Interner
	universe ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Universe returns (and creates if needed) the root scope holding builtins.
func (t *Table) Universe() ScopeID {
	if !t.universe.IsValid() {
		t.universe = t.Scopes.New(ScopeUniverse, NoScopeID, ast.NoStmtID, source.Span{})
	}
	return t.universe
}

// Insert adds sym to scope. A name already present in the same scope is
// shadowed: later lookups see the newest symbol.
func (t *Table) Insert(scopeID ScopeID, sym Symbol) SymbolID {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	sym.Scope = scopeID
	id := t.Symbols.New(&sym)
	scope = t.Scopes.Get(scopeID)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[sym.Name] = append(scope.NameIndex[sym.Name], id)
	return id
}

// LookupLocal finds the newest symbol named name declared directly in scope.
func (t *Table) LookupLocal(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	bucket := scope.NameIndex[name]
	if len(bucket) == 0 {
		return NoSymbolID, false
	}
	return bucket[len(bucket)-1], true
}

// Lookup walks the parent chain innermost-outward.
func (t *Table) Lookup(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	for scopeID.IsValid() {
		if id, ok := t.LookupLocal(scopeID, name); ok {
			return id, true
		}
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// Enclosing returns the nearest scope of one of the given kinds, starting
// at scopeID itself.
func (t *Table) Enclosing(scopeID ScopeID, kinds ...ScopeKind) ScopeID {
	for scopeID.IsValid() {
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		for _, k := range kinds {
			if scope.Kind == k {
				return scopeID
			}
		}
		scopeID = scope.Parent
	}
	return NoScopeID
}
