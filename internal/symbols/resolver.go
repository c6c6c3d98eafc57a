package symbols

import (
	"fmt"

	"gul/internal/ast"
	"gul/internal/source"
	"gul/internal/types"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Prelude []PreludeEntry
}

// PreludeEntry describes a symbol injected into the universe scope before
// source traversal.
type PreludeEntry struct {
	Name string
	Kind SymbolKind
	Type types.TypeID
}

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	// KindMaskNone filters out all kinds.
	KindMaskNone KindMask = 0
	// KindMaskAny allows all kinds.
	KindMaskAny KindMask = ^KindMask(0)
)

// Mask converts a symbol kind into a KindMask bit.
func (k SymbolKind) Mask() KindMask {
	return KindMask(1 << uint(k))
}

// Resolver drives scope management and declaration/lookup routines on top
// of a Table. It keeps the stack of open scopes.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver opens a module scope under the table's universe. Prelude
// entries are installed into the universe the first time it is created.
func NewResolver(table *Table, span source.Span, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table: table,
		stack: make([]ScopeID, 0, 8),
	}
	universe := table.Universe()
	if scope := table.Scopes.Get(universe); scope != nil && len(scope.Symbols) == 0 {
		for _, entry := range opts.Prelude {
			table.Insert(universe, Symbol{
				Name:  table.Strings.Intern(entry.Name),
				Kind:  entry.Kind,
				Flags: SymbolFlagBuiltin,
				Type:  entry.Type,
			})
		}
	}
	r.stack = append(r.stack, universe)
	r.Enter(ScopeModule, ast.NoStmtID, span)
	return r
}

// Table returns the backing table.
func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// ModuleScope returns the file-level scope opened by NewResolver.
func (r *Resolver) ModuleScope() ScopeID {
	if len(r.stack) < 2 {
		return NoScopeID
	}
	return r.stack[1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, owner ast.StmtID, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. Leaving anything but the innermost scope is
// a checker bug.
func (r *Resolver) Leave(expected ScopeID) {
	top := r.CurrentScope()
	if len(r.stack) <= 2 || (expected.IsValid() && top != expected) {
		panic(fmt.Sprintf("symbols: unbalanced scope leave: expected %d, top %d", expected, top))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a symbol into the current scope. Re-declaring a name
// shadows the earlier symbol.
func (r *Resolver) Declare(name source.StringID, span source.Span, kind SymbolKind, flags SymbolFlags, decl SymbolDecl) SymbolID {
	return r.table.Insert(r.CurrentScope(), Symbol{
		Name:  name,
		Kind:  kind,
		Span:  span,
		Flags: flags,
		Decl:  decl,
	})
}

// Lookup walks the scope chain searching for a symbol with the given name.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	return r.table.Lookup(r.CurrentScope(), name)
}

// LookupOne finds the most recent symbol with matching name and kind mask.
func (r *Resolver) LookupOne(name source.StringID, mask KindMask) (SymbolID, bool) {
	if mask == KindMaskNone {
		return NoSymbolID, false
	}
	for scopeID := r.CurrentScope(); scopeID.IsValid(); {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		bucket := scope.NameIndex[name]
		for i := len(bucket) - 1; i >= 0; i-- {
			if sym := r.table.Symbols.Get(bucket[i]); sym != nil && mask&sym.Kind.Mask() != 0 {
				return bucket[i], true
			}
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// Enclosing returns the nearest open scope of one of the given kinds.
func (r *Resolver) Enclosing(kinds ...ScopeKind) ScopeID {
	return r.table.Enclosing(r.CurrentScope(), kinds...)
}
