package symbols

import (
	"gul/internal/ast"
	"gul/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeUniverse           // builtins shared by every file
	ScopeModule             // one per file, holds top-level declarations
	ScopeFunction           // parameters and the function body
	ScopeBlock              // if/else/try/catch/match arm bodies
	ScopeLoop               // for/while/loop bodies
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeUniverse:
		return "universe"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ast.StmtID // statement that opened the scope, if any
	Span      source.Span
	NameIndex map[source.StringID][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
