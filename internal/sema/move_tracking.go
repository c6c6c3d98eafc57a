package sema

import (
	"maps"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/source"
	"gul/internal/symbols"
)

// moveState maps a binding to the span where it was last moved out.
type moveState = map[symbols.SymbolID]source.Span

func (tc *typeChecker) markBindingMoved(symID symbols.SymbolID, span source.Span) {
	if !symID.IsValid() {
		return
	}
	if _, exists := tc.moved[symID]; !exists {
		tc.moved[symID] = span
	}
}

// clearBindingMoved revives a binding after it is assigned a fresh value.
func (tc *typeChecker) clearBindingMoved(symID symbols.SymbolID) {
	delete(tc.moved, symID)
}

func (tc *typeChecker) checkUseAfterMove(symID symbols.SymbolID, span source.Span) {
	at, moved := tc.moved[symID]
	if !moved {
		return
	}
	name := "_"
	if sym := tc.symbol(symID); sym != nil {
		name = tc.name(sym.Name)
	}
	tc.reportWithNote(diag.SemaUseAfterMove, span, at, "value moved here", "use of moved value '%s'", name)
}

func (tc *typeChecker) snapshotMoves() moveState {
	return maps.Clone(tc.moved)
}

func (tc *typeChecker) restoreMoves(snapshot moveState) {
	tc.moved = maps.Clone(snapshot)
}

// mergeMoves unions the states of alternative control-flow paths: a
// binding moved on any path counts as moved afterwards.
func mergeMoves(states ...moveState) moveState {
	out := make(moveState)
	for _, st := range states {
		for key, value := range st {
			if _, exists := out[key]; !exists {
				out[key] = value
			}
		}
	}
	return out
}

// branches runs each alternative from the same starting state and leaves
// the union of their end states. mayskip adds the starting state as an
// extra path, for constructs that may run none of the alternatives.
func (tc *typeChecker) branches(mayskip bool, paths ...func()) {
	start := tc.snapshotMoves()
	ends := make([]moveState, 0, len(paths)+1)
	if mayskip {
		ends = append(ends, start)
	}
	for _, path := range paths {
		tc.restoreMoves(start)
		path()
		ends = append(ends, tc.snapshotMoves())
	}
	tc.moved = mergeMoves(ends...)
}

// loopBody checks body twice so that a move in one iteration is seen by a
// read in the next. Diagnostics of the second pass are deduplicated by the
// reporter. mayskip marks loops whose body can run zero times.
func (tc *typeChecker) loopBody(mayskip bool, body func()) {
	start := tc.snapshotMoves()
	body()
	first := tc.snapshotMoves()
	body()
	ends := []moveState{first, tc.snapshotMoves()}
	if mayskip {
		ends = append(ends, start)
	}
	tc.moved = mergeMoves(ends...)
}

// moveTarget returns the binding an argument expression names, if moving
// it out is tracked.
func (tc *typeChecker) moveTarget(arg ast.ExprID) symbols.SymbolID {
	arg = tc.builder.Exprs.Unparen(arg)
	if _, ok := tc.builder.Exprs.Ident(arg); !ok {
		return symbols.NoSymbolID
	}
	symID := tc.result.ExprSymbols[arg]
	if sym := tc.symbol(symID); sym != nil && sym.Kind.IsValue() {
		return symID
	}
	return symbols.NoSymbolID
}
