package types

import "gul/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyBool
	FamilyInt
	FamilyFloat
	FamilyString
	FamilyList
	FamilySet
	FamilyDict
	FamilyTuple
	FamilyRange
	FamilyNominal
)

const (
	FamilyNumeric   = FamilyInt | FamilyFloat
	FamilyContainer = FamilyList | FamilySet | FamilyDict | FamilyString | FamilyRange
	FamilyAll       = FamilyBool | FamilyNumeric | FamilyString | FamilyList | FamilySet |
		FamilyDict | FamilyTuple | FamilyRange | FamilyNominal
)

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	BinaryResultLeft
	BinaryResultBool
	BinaryResultNumeric // float if either side is float, int otherwise
	BinaryResultRange
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone       BinaryFlags = 0
	BinaryFlagSameFamily BinaryFlags = 1 << iota
	BinaryFlagShortCircuit
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResult
	Flags  BinaryFlags
}

// UnaryResult indicates how to derive the resulting type.
type UnaryResult uint8

const (
	UnaryResultUnknown UnaryResult = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResult
}

var numericSpec = BinarySpec{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultNumeric}

var binarySpecTable = map[ast.ExprBinaryOp][]BinarySpec{
	ast.ExprBinaryAdd: {
		numericSpec,
		{Left: FamilyString, Right: FamilyString, Result: BinaryResultLeft},
		{Left: FamilyList, Right: FamilyList, Result: BinaryResultLeft, Flags: BinaryFlagSameFamily},
	},
	ast.ExprBinarySub: {numericSpec},
	ast.ExprBinaryMul: {
		numericSpec,
		{Left: FamilyString, Right: FamilyInt, Result: BinaryResultLeft},
	},
	ast.ExprBinaryDiv: {numericSpec},
	ast.ExprBinaryMod: {numericSpec},
	ast.ExprBinaryPow: {numericSpec},
	ast.ExprBinaryEq: {
		{Left: FamilyAll, Right: FamilyAll, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	ast.ExprBinaryNe: {
		{Left: FamilyAll, Right: FamilyAll, Result: BinaryResultBool, Flags: BinaryFlagSameFamily},
	},
	ast.ExprBinaryLt: orderedSpecs,
	ast.ExprBinaryLe: orderedSpecs,
	ast.ExprBinaryGt: orderedSpecs,
	ast.ExprBinaryGe: orderedSpecs,
	ast.ExprBinaryIn: {
		{Left: FamilyAll, Right: FamilyContainer, Result: BinaryResultBool},
	},
	ast.ExprBinaryAnd: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	},
	ast.ExprBinaryOr: {
		{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit},
	},
	ast.ExprBinaryRange: {
		{Left: FamilyInt, Right: FamilyInt, Result: BinaryResultRange},
	},
	ast.ExprBinaryRangeInclusive: {
		{Left: FamilyInt, Right: FamilyInt, Result: BinaryResultRange},
	},
}

var orderedSpecs = []BinarySpec{
	{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultBool},
	{Left: FamilyString, Right: FamilyString, Result: BinaryResultBool},
}

var unarySpecTable = map[ast.ExprUnaryOp]UnarySpec{
	ast.ExprUnaryPlus: {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.ExprUnaryNeg:  {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.ExprUnaryNot:  {Operand: FamilyBool, Result: UnaryResultBool},
}

// BinaryRules returns operand rules for the given operator.
func BinaryRules(op ast.ExprBinaryOp) []BinarySpec {
	return binarySpecTable[op]
}

// UnaryRule returns operand/result hints for unary operators.
func UnaryRule(op ast.ExprUnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// Family classifies a type for the operator tables.
func (in *Interner) Family(id TypeID) FamilyMask {
	switch in.KindOf(id) {
	case KindInvalid, KindAny:
		return FamilyAny
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindString:
		return FamilyString
	case KindList:
		return FamilyList
	case KindSet:
		return FamilySet
	case KindDict:
		return FamilyDict
	case KindTuple:
		return FamilyTuple
	case KindRange:
		return FamilyRange
	case KindStruct, KindEnum:
		return FamilyNominal
	default:
		return FamilyNone
	}
}

// BinaryType computes the result of `left op right`. The second result is
// false when no rule accepts the operand pair; the returned type is then the
// fallback the checker should assume so that checking can continue.
// Unknown operands (any, or already invalid) are accepted by every rule.
func (in *Interner) BinaryType(op ast.ExprBinaryOp, left, right TypeID) (TypeID, bool) {
	specs := BinaryRules(op)
	if len(specs) == 0 {
		return in.builtins.Invalid, false
	}
	lf, rf := in.Family(left), in.Family(right)
	for _, spec := range specs {
		if !acceptsFamily(spec.Left, lf) || !acceptsFamily(spec.Right, rf) {
			continue
		}
		if spec.Flags&BinaryFlagSameFamily != 0 && lf != FamilyAny && rf != FamilyAny {
			if !sameFamily(lf, rf) || !in.Comparable(left, right) {
				continue
			}
		}
		return in.binaryResult(spec.Result, left, right), true
	}
	return in.binaryResult(specs[0].Result, left, right), false
}

// UnaryType computes the result of a prefix operator.
func (in *Interner) UnaryType(op ast.ExprUnaryOp, operand TypeID) (TypeID, bool) {
	spec, ok := UnaryRule(op)
	if !ok {
		return in.builtins.Invalid, false
	}
	result := operand
	if spec.Result == UnaryResultBool {
		result = in.builtins.Bool
	}
	return result, acceptsFamily(spec.Operand, in.Family(operand))
}

func acceptsFamily(mask, family FamilyMask) bool {
	return family == FamilyAny || mask&family != 0
}

func sameFamily(a, b FamilyMask) bool {
	if a&FamilyNumeric != 0 && b&FamilyNumeric != 0 {
		return true
	}
	return a == b
}

func (in *Interner) binaryResult(res BinaryResult, left, right TypeID) TypeID {
	b := in.builtins
	switch res {
	case BinaryResultLeft:
		if in.IsUnknown(left) {
			return right
		}
		return left
	case BinaryResultBool:
		return b.Bool
	case BinaryResultNumeric:
		lk, rk := in.KindOf(left), in.KindOf(right)
		switch {
		case lk == KindFloat || rk == KindFloat:
			return b.Float
		case lk == KindInt && rk == KindInt:
			return b.Int
		default:
			return b.Any
		}
	case BinaryResultRange:
		return in.Range(b.Int)
	default:
		return b.Invalid
	}
}
