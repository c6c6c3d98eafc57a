package ast

import (
	"gul/internal/source"
)

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena    *Arena[Stmt]
	Lets     *Arena[StmtLetData]
	Fns      *Arena[StmtFnData]
	Structs  *Arena[StmtStructData]
	Enums    *Arena[StmtEnumData]
	Ifs      *Arena[StmtIfData]
	Whiles   *Arena[StmtWhileData]
	Fors     *Arena[StmtForData]
	Loops    *Arena[StmtLoopData]
	Matches  *Arena[StmtMatchData]
	Returns  *Arena[StmtReturnData]
	Imports  *Arena[StmtImportData]
	Assigns  *Arena[StmtAssignData]
	Exprs    *Arena[StmtExprData]
	Tries    *Arena[StmtTryData]
	Foreigns *Arena[StmtForeignData]
	Entries  *Arena[StmtEntryData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Lets:     NewArena[StmtLetData](capHint),
		Fns:      NewArena[StmtFnData](small),
		Structs:  NewArena[StmtStructData](small),
		Enums:    NewArena[StmtEnumData](small),
		Ifs:      NewArena[StmtIfData](small),
		Whiles:   NewArena[StmtWhileData](small),
		Fors:     NewArena[StmtForData](small),
		Loops:    NewArena[StmtLoopData](small),
		Matches:  NewArena[StmtMatchData](small),
		Returns:  NewArena[StmtReturnData](small),
		Imports:  NewArena[StmtImportData](small),
		Assigns:  NewArena[StmtAssignData](capHint),
		Exprs:    NewArena[StmtExprData](capHint),
		Tries:    NewArena[StmtTryData](small),
		Foreigns: NewArena[StmtForeignData](small),
		Entries:  NewArena[StmtEntryData](1),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, arena *Arena[T], id StmtID, kind StmtKind) (*T, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return nil, false
	}
	return arena.Get(uint32(st.Payload)), true
}

// NewBad allocates a placeholder for a statement that failed to parse.
func (s *Stmts) NewBad(span source.Span) StmtID { return s.New(StmtBad, span, NoPayloadID) }

func (s *Stmts) NewBreak(span source.Span) StmtID    { return s.New(StmtBreak, span, NoPayloadID) }
func (s *Stmts) NewContinue(span source.Span) StmtID { return s.New(StmtContinue, span, NoPayloadID) }
func (s *Stmts) NewPass(span source.Span) StmtID     { return s.New(StmtPass, span, NoPayloadID) }

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	return s.New(StmtLet, span, PayloadID(s.Lets.Allocate(data)))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) { return stmtPayload(s, s.Lets, id, StmtLet) }

func (s *Stmts) NewFn(span source.Span, data StmtFnData) StmtID {
	return s.New(StmtFn, span, PayloadID(s.Fns.Allocate(data)))
}

func (s *Stmts) Fn(id StmtID) (*StmtFnData, bool) { return stmtPayload(s, s.Fns, id, StmtFn) }

func (s *Stmts) NewStruct(span source.Span, data StmtStructData) StmtID {
	return s.New(StmtStruct, span, PayloadID(s.Structs.Allocate(data)))
}

func (s *Stmts) Struct(id StmtID) (*StmtStructData, bool) {
	return stmtPayload(s, s.Structs, id, StmtStruct)
}

func (s *Stmts) NewEnum(span source.Span, data StmtEnumData) StmtID {
	return s.New(StmtEnum, span, PayloadID(s.Enums.Allocate(data)))
}

func (s *Stmts) Enum(id StmtID) (*StmtEnumData, bool) { return stmtPayload(s, s.Enums, id, StmtEnum) }

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	return s.New(StmtIf, span, PayloadID(s.Ifs.Allocate(data)))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) { return stmtPayload(s, s.Ifs, id, StmtIf) }

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body []StmtID) StmtID {
	return s.New(StmtWhile, span, PayloadID(s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	return stmtPayload(s, s.Whiles, id, StmtWhile)
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.New(StmtFor, span, PayloadID(s.Fors.Allocate(data)))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) { return stmtPayload(s, s.Fors, id, StmtFor) }

func (s *Stmts) NewLoop(span source.Span, body []StmtID) StmtID {
	return s.New(StmtLoop, span, PayloadID(s.Loops.Allocate(StmtLoopData{Body: body})))
}

func (s *Stmts) Loop(id StmtID) (*StmtLoopData, bool) { return stmtPayload(s, s.Loops, id, StmtLoop) }

func (s *Stmts) NewMatch(span source.Span, match ExprID) StmtID {
	return s.New(StmtMatch, span, PayloadID(s.Matches.Allocate(StmtMatchData{Match: match})))
}

func (s *Stmts) Match(id StmtID) (*StmtMatchData, bool) {
	return stmtPayload(s, s.Matches, id, StmtMatch)
}

// NewReturn allocates a return; value may be NoExprID.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.New(StmtReturn, span, PayloadID(s.Returns.Allocate(StmtReturnData{Value: value})))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	return stmtPayload(s, s.Returns, id, StmtReturn)
}

func (s *Stmts) NewImport(span source.Span, data StmtImportData) StmtID {
	return s.New(StmtImport, span, PayloadID(s.Imports.Allocate(data)))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	return stmtPayload(s, s.Imports, id, StmtImport)
}

func (s *Stmts) NewAssign(span source.Span, op AssignOp, target, value ExprID) StmtID {
	return s.New(StmtAssign, span, PayloadID(s.Assigns.Allocate(StmtAssignData{Op: op, Target: target, Value: value})))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	return stmtPayload(s, s.Assigns, id, StmtAssign)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.New(StmtExpr, span, PayloadID(s.Exprs.Allocate(StmtExprData{Expr: expr})))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) { return stmtPayload(s, s.Exprs, id, StmtExpr) }

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.New(StmtTry, span, PayloadID(s.Tries.Allocate(data)))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) { return stmtPayload(s, s.Tries, id, StmtTry) }

func (s *Stmts) NewForeign(span source.Span, data StmtForeignData) StmtID {
	return s.New(StmtForeign, span, PayloadID(s.Foreigns.Allocate(data)))
}

func (s *Stmts) Foreign(id StmtID) (*StmtForeignData, bool) {
	return stmtPayload(s, s.Foreigns, id, StmtForeign)
}

func (s *Stmts) NewEntry(span source.Span, body []StmtID) StmtID {
	return s.New(StmtEntry, span, PayloadID(s.Entries.Allocate(StmtEntryData{Body: body})))
}

func (s *Stmts) Entry(id StmtID) (*StmtEntryData, bool) {
	return stmtPayload(s, s.Entries, id, StmtEntry)
}
