package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type. It doubles as the invalid type so
// that an expression which already produced a diagnostic stays quiet.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnit
	KindBool
	KindString
	KindInt
	KindFloat
	KindList
	KindSet
	KindDict
	KindTuple
	KindRange
	KindFn
	KindStruct
	KindEnum
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindDict:
		return "dict"
	case KindTuple:
		return "tuple"
	case KindRange:
		return "range"
	case KindFn:
		return "fn"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindModule:
		return "module"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // list/set/range element, dict value
	Key     TypeID // dict key
	Payload uint32 // index into the side tables for tuple/fn/struct/enum/module
}

// MakeList describes list[elem].
func MakeList(elem TypeID) Type {
	return Type{Kind: KindList, Elem: elem}
}

// MakeSet describes set[elem].
func MakeSet(elem TypeID) Type {
	return Type{Kind: KindSet, Elem: elem}
}

// MakeDict describes dict[key, value].
func MakeDict(key, value TypeID) Type {
	return Type{Kind: KindDict, Key: key, Elem: value}
}

// MakeRange describes the result of `a..b`.
func MakeRange(elem TypeID) Type {
	return Type{Kind: KindRange, Elem: elem}
}
