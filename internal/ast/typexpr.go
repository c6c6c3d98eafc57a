package ast

import "gul/internal/source"

type TypeExprKind uint8

const (
	TypeExprBad TypeExprKind = iota
	// TypeExprName is a plain name: int, str, Point.
	TypeExprName
	// TypeExprGeneric is a name with arguments: list[int], dict[str, int].
	TypeExprGeneric
)

// TypeExpr is a type annotation as written. Annotation spellings such as
// "@int" are stored under the bare name.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span
	Name source.StringID
	Args []TypeExprID
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) NewName(span source.Span, name source.StringID) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprName, Span: span, Name: name}))
}

func (t *TypeExprs) NewGeneric(span source.Span, name source.StringID, args []TypeExprID) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprGeneric, Span: span, Name: name, Args: args}))
}

func (t *TypeExprs) NewBad(span source.Span) TypeExprID {
	return TypeExprID(t.Arena.Allocate(TypeExpr{Kind: TypeExprBad, Span: span}))
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
