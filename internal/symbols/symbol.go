package symbols

import (
	"gul/internal/ast"
	"gul/internal/source"
	"gul/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolLet
	SymbolVar
	SymbolParam
	SymbolFunc
	SymbolStruct
	SymbolEnum
	SymbolImport
	SymbolBuiltin
	SymbolLoopVar
	SymbolBinding // match arm or catch clause binding
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLet:
		return "let"
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolFunc:
		return "fn"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolImport:
		return "import"
	case SymbolBuiltin:
		return "builtin"
	case SymbolLoopVar:
		return "loop variable"
	case SymbolBinding:
		return "binding"
	default:
		return "invalid"
	}
}

// IsValue reports kinds that name a runtime value rather than a type or module.
func (k SymbolKind) IsValue() bool {
	switch k {
	case SymbolLet, SymbolVar, SymbolParam, SymbolLoopVar, SymbolBinding:
		return true
	default:
		return false
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagMutable SymbolFlags = 1 << iota
	SymbolFlagBuiltin
	SymbolFlagAsync
	SymbolFlagTopLevel
	SymbolFlagMethod
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagAsync != 0 {
		labels = append(labels, "async")
	}
	if f&SymbolFlagTopLevel != 0 {
		labels = append(labels, "top-level")
	}
	if f&SymbolFlagMethod != 0 {
		labels = append(labels, "method")
	}
	return labels
}

// SymbolDecl points at the AST origin for diagnostics and codegen.
type SymbolDecl struct {
	Stmt ast.StmtID
	Expr ast.ExprID
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  SymbolDecl
	Type  types.TypeID
	Mode  ast.Ownership // parameters only
}

// Mutable reports whether the binding may be reassigned.
func (s *Symbol) Mutable() bool { return s.Flags&SymbolFlagMutable != 0 }
