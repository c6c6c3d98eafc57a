package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate walks the arenas checking structural invariants: parents are
// allocated before their children (so the parent chain is acyclic), child
// and parent links agree, and every symbol is indexed by its scope.
func (t *Table) Validate() error {
	var errs []error
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		id, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", id))
		}
		if scope.Parent.IsValid() {
			if scope.Parent >= id {
				errs = append(errs, fmt.Errorf("scope %d has parent %d allocated after it", id, scope.Parent))
				continue
			}
			if !slices.Contains(t.Scopes.data[scope.Parent].Children, id) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", id, scope.Parent))
			}
		} else if scope.Kind != ScopeUniverse {
			errs = append(errs, fmt.Errorf("scope %d (%s) has no parent", id, scope.Kind))
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || t.Scopes.data[child].Parent != id {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", id, child))
			}
		}
		for name, bucket := range scope.NameIndex {
			for _, sym := range bucket {
				if !slices.Contains(scope.Symbols, sym) {
					errs = append(errs, fmt.Errorf("scope %d name index %d references foreign symbol %d", id, name, sym))
				}
			}
		}
	}
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := &t.Symbols.data[idx]
		scope := t.Scopes.Get(sym.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", id, sym.Scope))
			continue
		}
		if !slices.Contains(scope.NameIndex[sym.Name], id) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d index", id, sym.Scope))
		}
	}
	return errors.Join(errs...)
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
