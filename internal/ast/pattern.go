package ast

import "gul/internal/source"

type PatternKind uint8

const (
	PatBad PatternKind = iota
	// PatWildcard is "_".
	PatWildcard
	// PatBind is a bare identifier: it always matches and binds the scrutinee.
	PatBind
	// PatLiteral compares the scrutinee with a literal.
	PatLiteral
	// PatVariant is Enum.Variant.
	PatVariant
)

type Pattern struct {
	Kind PatternKind
	Span source.Span
	// Name is the bound name for PatBind and the variant for PatVariant.
	Name source.StringID
	// Enum is the qualifier of PatVariant.
	Enum    source.StringID
	Literal ExprID
}

// IsIrrefutable reports patterns that match every value.
func (p *Pattern) IsIrrefutable() bool {
	return p.Kind == PatWildcard || p.Kind == PatBind
}

type Patterns struct {
	Arena *Arena[Pattern]
}

func NewPatterns(capHint uint) *Patterns {
	return &Patterns{Arena: NewArena[Pattern](capHint)}
}

func (p *Patterns) New(pat Pattern) PatternID {
	return PatternID(p.Arena.Allocate(pat))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}
