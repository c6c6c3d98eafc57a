package ast

import (
	"gul/internal/source"
)

type StmtKind uint8

const (
	StmtBad StmtKind = iota
	// StmtLet covers both "let" and "var"; see StmtLetData.Mutable.
	StmtLet
	// StmtFn covers "fn" and "async fn".
	StmtFn
	StmtStruct
	StmtEnum
	StmtIf
	StmtWhile
	StmtFor
	StmtLoop
	StmtMatch
	StmtBreak
	StmtContinue
	StmtReturn
	StmtImport
	StmtAssign
	StmtExpr
	StmtTry
	StmtForeign
	StmtPass
	// StmtEntry is the "mn:" program entry block.
	StmtEntry
)

var stmtKindNames = [...]string{
	StmtBad:      "Bad",
	StmtLet:      "Let",
	StmtFn:       "Fn",
	StmtStruct:   "Struct",
	StmtEnum:     "Enum",
	StmtIf:       "If",
	StmtWhile:    "While",
	StmtFor:      "For",
	StmtLoop:     "Loop",
	StmtMatch:    "Match",
	StmtBreak:    "Break",
	StmtContinue: "Continue",
	StmtReturn:   "Return",
	StmtImport:   "Import",
	StmtAssign:   "Assign",
	StmtExpr:     "Expr",
	StmtTry:      "Try",
	StmtForeign:  "Foreign",
	StmtPass:     "Pass",
	StmtEntry:    "Entry",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtLetData struct {
	Name     source.StringID
	NameSpan source.Span
	Mutable  bool
	Type     TypeExprID
	Value    ExprID
}

type StmtFnData struct {
	Name     source.StringID
	NameSpan source.Span
	Async    bool
	Params   []Param
	Return   TypeExprID
	Body     []StmtID
}

// HasSelf reports whether the function is a method taking a receiver.
func (f *StmtFnData) HasSelf() bool {
	return len(f.Params) > 0 && f.Params[0].IsSelf
}

type Field struct {
	Name source.StringID
	Span source.Span
	Type TypeExprID
}

type StmtStructData struct {
	Name     source.StringID
	NameSpan source.Span
	Fields   []Field
	// Methods are StmtFn statements declared in the struct body.
	Methods []StmtID
}

type Variant struct {
	Name source.StringID
	Span source.Span
}

type StmtEnumData struct {
	Name     source.StringID
	NameSpan source.Span
	Variants []Variant
}

// IfBranch is the "if" branch or one "elif" branch.
type IfBranch struct {
	Span source.Span
	Cond ExprID
	Body []StmtID
}

type StmtIfData struct {
	Branches []IfBranch
	Else     []StmtID
	HasElse  bool
}

type StmtWhileData struct {
	Cond ExprID
	Body []StmtID
}

type StmtForData struct {
	Var     source.StringID
	VarSpan source.Span
	Iter    ExprID
	Body    []StmtID
}

type StmtLoopData struct {
	Body []StmtID
}

type StmtMatchData struct {
	Match ExprID
}

type StmtReturnData struct {
	Value ExprID
}

// StmtImportData is "@imp a.b.c" or the grouped "@imp a.b{c, d}".
type StmtImportData struct {
	Path    []source.StringID
	Names   []source.StringID
	Grouped bool
}

type AssignOp uint8

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
)

func (op AssignOp) String() string {
	switch op {
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	}
	return "="
}

// BinaryOp returns the arithmetic behind a compound assignment.
func (op AssignOp) BinaryOp() (ExprBinaryOp, bool) {
	switch op {
	case AssignAdd:
		return ExprBinaryAdd, true
	case AssignSub:
		return ExprBinarySub, true
	case AssignMul:
		return ExprBinaryMul, true
	case AssignDiv:
		return ExprBinaryDiv, true
	case AssignMod:
		return ExprBinaryMod, true
	}
	return 0, false
}

type StmtAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type StmtExprData struct {
	Expr ExprID
}

// CatchClause binds the error to Name when one is written.
type CatchClause struct {
	Span     source.Span
	Name     source.StringID
	NameSpan source.Span
	Body     []StmtID
}

type StmtTryData struct {
	Body       []StmtID
	Catches    []CatchClause
	Finally    []StmtID
	HasFinally bool
}

// StmtForeignData is an embedded block of another language. Body is the
// captured text, never interpreted.
type StmtForeignData struct {
	Tag      source.StringID
	Body     source.StringID
	BodySpan source.Span
	Braced   bool
}

type StmtEntryData struct {
	Body []StmtID
}
