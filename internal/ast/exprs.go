package ast

import (
	"gul/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLiteralData]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Calls     *Arena[ExprCallData]
	Indices   *Arena[ExprIndexData]
	Members   *Arena[ExprMemberData]
	Lambdas   *Arena[ExprLambdaData]
	Matches   *Arena[ExprMatchData]
	TypeCtors *Arena[ExprTypeCtorData]
	Seqs      *Arena[ExprSeqData]
	Dicts     *Arena[ExprDictData]
	Groups    *Arena[ExprGroupData]
	Awaits    *Arena[ExprAwaitData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Unaries:   NewArena[ExprUnaryData](small),
		Calls:     NewArena[ExprCallData](capHint),
		Indices:   NewArena[ExprIndexData](small),
		Members:   NewArena[ExprMemberData](small),
		Lambdas:   NewArena[ExprLambdaData](small),
		Matches:   NewArena[ExprMatchData](small),
		TypeCtors: NewArena[ExprTypeCtorData](small),
		Seqs:      NewArena[ExprSeqData](small),
		Dicts:     NewArena[ExprDictData](small),
		Groups:    NewArena[ExprGroupData](small),
		Awaits:    NewArena[ExprAwaitData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewBad allocates a placeholder for an expression that failed to parse.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, NoPayloadID)
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	return e.Idents.Get(p), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, raw, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary expression data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	return e.Indices.Get(p), true
}

func (e *Exprs) NewMember(span source.Span, target ExprID, name source.StringID, nameSpan source.Span) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Name: name, NameSpan: nameSpan})
	return e.new(ExprMember, span, PayloadID(payload))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	if !ok {
		return nil, false
	}
	return e.Members.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	payload := e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body})
	return e.new(ExprLambda, span, PayloadID(payload))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	payload := e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: arms})
	return e.new(ExprMatch, span, PayloadID(payload))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	p, ok := e.payload(id, ExprMatch)
	if !ok {
		return nil, false
	}
	return e.Matches.Get(p), true
}

func (e *Exprs) NewTypeCtor(span source.Span, ctor TypeCtorKind, args []ExprID, entries []DictEntry) ExprID {
	payload := e.TypeCtors.Allocate(ExprTypeCtorData{Ctor: ctor, Args: args, Entries: entries})
	return e.new(ExprTypeCtor, span, PayloadID(payload))
}

func (e *Exprs) TypeCtor(id ExprID) (*ExprTypeCtorData, bool) {
	p, ok := e.payload(id, ExprTypeCtor)
	if !ok {
		return nil, false
	}
	return e.TypeCtors.Get(p), true
}

// NewSeq creates a list, tuple or set literal.
func (e *Exprs) NewSeq(span source.Span, kind ExprKind, elems []ExprID) ExprID {
	switch kind {
	case ExprList, ExprTuple, ExprSet:
	default:
		panic("ast: NewSeq with non-sequence kind " + kind.String())
	}
	payload := e.Seqs.Allocate(ExprSeqData{Elems: elems})
	return e.new(kind, span, PayloadID(payload))
}

// Seq returns the elements of a list, tuple or set literal.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprList, ExprTuple, ExprSet:
		return e.Seqs.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{Entries: entries})
	return e.new(ExprDict, span, PayloadID(payload))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	p, ok := e.payload(id, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Groups.Get(p), true
}

func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	payload := e.Awaits.Allocate(ExprAwaitData{Value: value})
	return e.new(ExprAwait, span, PayloadID(payload))
}

func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	p, ok := e.payload(id, ExprAwait)
	if !ok {
		return nil, false
	}
	return e.Awaits.Get(p), true
}

// Unparen strips any number of enclosing groups.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		g, ok := e.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}
