package ast

import (
	"gul/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprBad is a placeholder left where an expression failed to parse.
	ExprBad ExprKind = iota
	// ExprIdent represents an identifier expression.
	ExprIdent
	// ExprLit represents a literal expression.
	ExprLit
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprUnary represents a unary expression.
	ExprUnary
	// ExprCall represents a call expression.
	ExprCall
	// ExprIndex represents x[i].
	ExprIndex
	// ExprMember represents x.name and tuple access t.0.
	ExprMember
	// ExprLambda represents fn(x) => expr.
	ExprLambda
	// ExprMatch represents a match expression.
	ExprMatch
	// ExprTypeCtor represents an annotation applied to arguments: @int(x), @list[1, 2].
	ExprTypeCtor
	ExprList
	ExprTuple
	ExprSet
	ExprDict
	ExprGroup
	ExprAwait
)

var exprKindNames = [...]string{
	ExprBad:      "Bad",
	ExprIdent:    "Ident",
	ExprLit:      "Lit",
	ExprBinary:   "Binary",
	ExprUnary:    "Unary",
	ExprCall:     "Call",
	ExprIndex:    "Index",
	ExprMember:   "Member",
	ExprLambda:   "Lambda",
	ExprMatch:    "Match",
	ExprTypeCtor: "TypeCtor",
	ExprList:     "List",
	ExprTuple:    "Tuple",
	ExprSet:      "Set",
	ExprDict:     "Dict",
	ExprGroup:    "Group",
	ExprAwait:    "Await",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	// ExprBinaryPow is '**' and '^'; both associate to the right.
	ExprBinaryPow

	ExprBinaryEq
	ExprBinaryNe
	ExprBinaryLt
	ExprBinaryLe
	ExprBinaryGt
	ExprBinaryGe
	// ExprBinaryIn is the membership test "x in xs".
	ExprBinaryIn

	ExprBinaryAnd
	ExprBinaryOr

	// ExprBinaryRange is a..b, ExprBinaryRangeInclusive is a..=b.
	ExprBinaryRange
	ExprBinaryRangeInclusive
)

var binaryOpText = [...]string{
	ExprBinaryAdd:            "+",
	ExprBinarySub:            "-",
	ExprBinaryMul:            "*",
	ExprBinaryDiv:            "/",
	ExprBinaryMod:            "%",
	ExprBinaryPow:            "**",
	ExprBinaryEq:             "==",
	ExprBinaryNe:             "!=",
	ExprBinaryLt:             "<",
	ExprBinaryLe:             "<=",
	ExprBinaryGt:             ">",
	ExprBinaryGe:             ">=",
	ExprBinaryIn:             "in",
	ExprBinaryAnd:            "&&",
	ExprBinaryOr:             "||",
	ExprBinaryRange:          "..",
	ExprBinaryRangeInclusive: "..=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports ==, !=, <, <=, >, >=.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryEq && op <= ExprBinaryGe
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryPlus
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryNot:
		return "!"
	}
	return "?"
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitTrue
	ExprLitFalse
)

// TypeCtorKind is the annotation used by an ExprTypeCtor.
type TypeCtorKind uint8

const (
	TypeCtorInt TypeCtorKind = iota
	TypeCtorFloat
	TypeCtorStr
	TypeCtorBool
	TypeCtorList
	TypeCtorTuple
	TypeCtorSet
	TypeCtorDict
)

var typeCtorNames = [...]string{
	TypeCtorInt:   "int",
	TypeCtorFloat: "float",
	TypeCtorStr:   "str",
	TypeCtorBool:  "bool",
	TypeCtorList:  "list",
	TypeCtorTuple: "tuple",
	TypeCtorSet:   "set",
	TypeCtorDict:  "dict",
}

func (k TypeCtorKind) String() string {
	if int(k) < len(typeCtorNames) {
		return typeCtorNames[k]
	}
	return "?"
}

// IsCollection reports the constructors that take element lists.
func (k TypeCtorKind) IsCollection() bool {
	return k >= TypeCtorList
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData keeps the raw lexeme and, for strings, the decoded value.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Raw   source.StringID
	Value source.StringID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprMemberData struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

// MatchArm is "pattern [if guard] => body". The body is either a single
// expression or an indented block.
type MatchArm struct {
	Span    source.Span
	Pattern PatternID
	Guard   ExprID
	Value   ExprID
	Block   []StmtID
	IsBlock bool
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

// ExprTypeCtorData holds constructor arguments. Collection constructors keep
// their elements in Args; @dict keeps key/value pairs in Entries.
type ExprTypeCtorData struct {
	Ctor    TypeCtorKind
	Args    []ExprID
	Entries []DictEntry
}

// ExprSeqData is the payload of list, tuple and set literals.
type ExprSeqData struct {
	Elems []ExprID
}

type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprAwaitData struct {
	Value ExprID
}
